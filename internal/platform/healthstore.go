package platform

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pkdindustries/dachat/internal/core"
)

// healthDocument is the on-disk profile format. The authorized flag stands
// in for the platform permission prompt.
type healthDocument struct {
	Authorized    bool   `yaml:"authorized"`
	Gender        string `yaml:"gender"`
	DateOfBirth   string `yaml:"dateofbirth"`
	BloodType     string `yaml:"bloodtype"`
	WheelchairUse string `yaml:"wheelchairuse"`
}

// FileHealthStore reads the user's health characteristics from a YAML file.
// The store is available when the file is readable; each profile read
// requires the document's authorized flag to be set.
type FileHealthStore struct {
	path string
}

var _ core.HealthStore = (*FileHealthStore)(nil)

func NewFileHealthStore(path string) *FileHealthStore {
	return &FileHealthStore{path: path}
}

func (s *FileHealthStore) Available() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *FileHealthStore) RequestAuthorization(ctx context.Context) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	if !doc.Authorized {
		return core.ErrUnauthorized
	}
	return nil
}

func (s *FileHealthStore) Profile() (core.HealthProfile, error) {
	doc, err := s.load()
	if err != nil {
		return core.HealthProfile{}, err
	}
	if !doc.Authorized {
		return core.HealthProfile{}, core.ErrUnauthorized
	}

	profile := core.HealthProfile{
		Sex:           parseSex(doc.Gender),
		BloodType:     parseBloodType(doc.BloodType),
		WheelchairUse: parseWheelchair(doc.WheelchairUse),
	}
	if doc.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", doc.DateOfBirth)
		if err != nil {
			return core.HealthProfile{}, fmt.Errorf("invalid dateofbirth %q: %w", doc.DateOfBirth, err)
		}
		profile.DateOfBirth = dob
	}
	return profile, nil
}

func (s *FileHealthStore) load() (*healthDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, core.ErrHealthDataNotAvailable
	}
	var doc healthDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid health profile: %w", err)
	}
	return &doc, nil
}

func parseSex(s string) core.BiologicalSex {
	switch strings.ToLower(s) {
	case "female":
		return core.SexFemale
	case "male":
		return core.SexMale
	case "other":
		return core.SexOther
	default:
		return core.SexNotSet
	}
}

func parseBloodType(s string) core.BloodType {
	switch strings.ToUpper(s) {
	case "A+":
		return core.BloodAPositive
	case "A-":
		return core.BloodANegative
	case "B+":
		return core.BloodBPositive
	case "B-":
		return core.BloodBNegative
	case "AB+":
		return core.BloodABPositive
	case "AB-":
		return core.BloodABNegative
	case "O+":
		return core.BloodOPositive
	case "O-":
		return core.BloodONegative
	default:
		return core.BloodNotSet
	}
}

func parseWheelchair(s string) core.WheelchairUse {
	switch strings.ToLower(s) {
	case "no":
		return core.WheelchairNo
	case "yes":
		return core.WheelchairYes
	default:
		return core.WheelchairNotSet
	}
}
