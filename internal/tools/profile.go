package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"pkdindustries/dachat/internal/core"
)

type profileRecord struct {
	Gender        string `json:"gender"`
	DateOfBirth   string `json:"dateOfBirth"`
	BloodType     string `json:"bloodType"`
	WheelchairUse string `json:"wheelchairUse"`
}

// ProfileTool reads the user's health characteristics. Unavailability and
// denied authorization are fatal; the tool never returns partial data.
type ProfileTool struct {
	BaseTool
	store core.HealthStore
}

func NewProfileTool(store core.HealthStore) *ProfileTool {
	return &ProfileTool{store: store}
}

func (t *ProfileTool) GetName() string {
	return "get_user_profile"
}

func (t *ProfileTool) GetSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Title:       "get_user_profile",
		Description: "Get the user's profile: gender, date of birth, blood type and wheelchair use",
		Type:        "object",
		Properties:  map[string]*jsonschema.Schema{},
		Required:    []string{},
	}
}

func (t *ProfileTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	if !t.store.Available() {
		return "", core.ErrHealthDataNotAvailable
	}
	if err := t.store.RequestAuthorization(ctx); err != nil {
		return "", err
	}

	profile, err := t.store.Profile()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(profileRecord{
		Gender:        genderString(profile.Sex),
		DateOfBirth:   dateOfBirthString(profile.DateOfBirth),
		BloodType:     bloodTypeString(profile.BloodType),
		WheelchairUse: wheelchairString(profile.WheelchairUse),
	})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func genderString(sex core.BiologicalSex) string {
	switch sex {
	case core.SexNotSet:
		return "Not Set"
	case core.SexFemale:
		return "Female"
	case core.SexMale:
		return "Male"
	case core.SexOther:
		return "Other"
	default:
		return "Unknown"
	}
}

func dateOfBirthString(dob time.Time) string {
	if dob.IsZero() {
		return "Not Set"
	}
	return fmt.Sprintf("%d-%d-%d", dob.Year(), int(dob.Month()), dob.Day())
}

func bloodTypeString(bt core.BloodType) string {
	switch bt {
	case core.BloodNotSet:
		return "Not Set"
	case core.BloodAPositive:
		return "A+"
	case core.BloodANegative:
		return "A-"
	case core.BloodBPositive:
		return "B+"
	case core.BloodBNegative:
		return "B-"
	case core.BloodABPositive:
		return "AB+"
	case core.BloodABNegative:
		return "AB-"
	case core.BloodOPositive:
		return "O+"
	case core.BloodONegative:
		return "O-"
	default:
		return "Unknown"
	}
}

func wheelchairString(w core.WheelchairUse) string {
	switch w {
	case core.WheelchairNotSet:
		return "Not Set"
	case core.WheelchairNo:
		return "No"
	case core.WheelchairYes:
		return "Yes"
	default:
		return "Unknown"
	}
}
