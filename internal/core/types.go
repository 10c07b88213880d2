package core

import (
	"fmt"
	"time"
)

// ResponseSnapshot is one element of a model response stream. Content is
// cumulative: each snapshot carries the full text generated so far, not a
// delta. A snapshot with a non-nil Err terminates the stream.
type ResponseSnapshot struct {
	Content string
	Err     error
}

// GenerationOptions are rebuilt from the live configuration for every request.
type GenerationOptions struct {
	MaxTokens   int
	Temperature float32
}

func (o GenerationOptions) Validate() error {
	if o.MaxTokens <= 0 {
		return fmt.Errorf("maxtokens must be positive, got %d", o.MaxTokens)
	}
	if o.Temperature < 0 || o.Temperature > 1 {
		return fmt.Errorf("temperature must be in [0.0, 1.0], got %g", o.Temperature)
	}
	return nil
}

// ImageStyle is a normalized image generation style category.
type ImageStyle string

const (
	StyleAnimation    ImageStyle = "animation"
	StyleIllustration ImageStyle = "illustration"
	StyleSketch       ImageStyle = "sketch"
)

// BiologicalSex mirrors the characteristic enums of the health store.
type BiologicalSex int

const (
	SexNotSet BiologicalSex = iota
	SexFemale
	SexMale
	SexOther
)

type BloodType int

const (
	BloodNotSet BloodType = iota
	BloodAPositive
	BloodANegative
	BloodBPositive
	BloodBNegative
	BloodABPositive
	BloodABNegative
	BloodOPositive
	BloodONegative
)

type WheelchairUse int

const (
	WheelchairNotSet WheelchairUse = iota
	WheelchairNo
	WheelchairYes
)

// HealthProfile is the fixed set of characteristics the profile tool reads.
// A zero DateOfBirth means the characteristic is not set.
type HealthProfile struct {
	Sex           BiologicalSex
	DateOfBirth   time.Time
	BloodType     BloodType
	WheelchairUse WheelchairUse
}
