package recommend

import (
	"github.com/pkg/errors"

	"Pumpcalc/internal/calc/pump"
)

// DefaultServiceFactor is the margin applied over brake power before a
// motor is picked.
const DefaultServiceFactor = 1.15

// IEC 60072 standard output ratings, kW.
var StandardRatingsKW = []float64{
	0.18, 0.25, 0.37, 0.55, 0.75, 1.1, 1.5, 2.2, 3, 4, 5.5, 7.5, 11, 15, 18.5, 22,
	30, 37, 45, 55, 75, 90, 110, 132, 160, 200, 250, 315, 355, 400, 450, 500,
}

var ErrNoStandardMotor = errors.New("required power exceeds the largest standard motor rating")

type MotorRecommendInput struct {
	Duty          pump.Request `json:"input"`
	ServiceFactor float64      `json:"service_factor" validate:"omitempty,gte=1,lte=2"`
}

type MotorRecommendResult struct {
	BrakePowerKW    float64 `json:"brake_power_kw"`
	RequiredPowerKW float64 `json:"required_power_kw"`
	MotorRatingKW   float64 `json:"motor_rating_kw"`
	Notes           string  `json:"notes"`
}

func MotorSize(in MotorRecommendInput, defaultDensity float64) (MotorRecommendResult, error) {
	if in.ServiceFactor <= 0 {
		in.ServiceFactor = DefaultServiceFactor
	}
	res, err := pump.Calculate(in.Duty.Input(defaultDensity))
	if err != nil {
		return MotorRecommendResult{}, err
	}
	required := res.BrakePowerKW * in.ServiceFactor

	rating := 0.0
	for _, r := range StandardRatingsKW {
		if r >= required {
			rating = r
			break
		}
	}
	if rating == 0 {
		return MotorRecommendResult{}, errors.Wrapf(ErrNoStandardMotor, "%.1f kW", required)
	}
	return MotorRecommendResult{
		BrakePowerKW:    res.BrakePowerKW,
		RequiredPowerKW: required,
		MotorRatingKW:   rating,
		Notes:           "Smallest IEC standard motor covering brake power with service factor.",
	}, nil
}
