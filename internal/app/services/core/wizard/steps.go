package wizard

import (
	"context"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/constvars"
	"math"
)

type fetchFunc func(ctx context.Context, sensor contracts.SensorClient) (*models.SensorReading, error)

type stepMetric struct {
	name     models.MetricName
	label    string
	unit     string
	decimals int
	read     func(reading *models.SensorReading) *float64
	assign   func(upsert *models.VitalsUpsert, value *float64)
}

type stepDefinition struct {
	slug     string
	title    string
	route    string
	metrics  []stepMetric
	fetch    fetchFunc
	fallback string
}

func (d *stepDefinition) hasSensor() bool {
	return d.fetch != nil
}

func (d *stepDefinition) isBloodPressure() bool {
	return d.slug == constvars.StepBloodPressure
}

// The first metric of a sensor step decides whether the acquisition succeeded.
var wizardSteps = []stepDefinition{
	{
		slug:  constvars.StepWeight,
		title: "Weight",
		route: constvars.RouteWizardWeight,
		metrics: []stepMetric{
			{
				name: models.MetricWeightKg, label: "Weight", unit: "kg", decimals: 1,
				read:   func(r *models.SensorReading) *float64 { return r.Weight },
				assign: func(u *models.VitalsUpsert, v *float64) { u.WeightKg = v },
			},
		},
		fetch: func(ctx context.Context, sensor contracts.SensorClient) (*models.SensorReading, error) {
			return sensor.FetchWeight(ctx)
		},
		fallback: "Unable to read weight. Please step on the scale and try again.",
	},
	{
		slug:  constvars.StepHeight,
		title: "Height",
		route: constvars.RouteWizardHeight,
		metrics: []stepMetric{
			{
				name: models.MetricHeightCm, label: "Height", unit: "cm", decimals: 1,
				read:   func(r *models.SensorReading) *float64 { return r.Height },
				assign: func(u *models.VitalsUpsert, v *float64) { u.HeightCm = v },
			},
		},
		fetch: func(ctx context.Context, sensor contracts.SensorClient) (*models.SensorReading, error) {
			return sensor.FetchHeight(ctx)
		},
		fallback: "Unable to read height. Please stand straight under the sensor and try again.",
	},
	{
		slug:  constvars.StepPulse,
		title: "Pulse & Oxygen",
		route: constvars.RouteWizardPulse,
		metrics: []stepMetric{
			{
				name: models.MetricPulseBpm, label: "Heart Rate", unit: "bpm", decimals: 0,
				read:   func(r *models.SensorReading) *float64 { return r.HeartRate },
				assign: func(u *models.VitalsUpsert, v *float64) { u.HeartRate = v },
			},
			{
				name: models.MetricSpO2Percent, label: "SpO₂", unit: "%", decimals: 0,
				read:   func(r *models.SensorReading) *float64 { return r.SpO2 },
				assign: func(u *models.VitalsUpsert, v *float64) { u.SpO2 = v },
			},
		},
		fetch: func(ctx context.Context, sensor contracts.SensorClient) (*models.SensorReading, error) {
			return sensor.FetchHeartRate(ctx)
		},
		fallback: "Unable to read pulse. Please keep your finger still in the oximeter and try again.",
	},
	{
		slug:  constvars.StepTemperature,
		title: "Temperature",
		route: constvars.RouteWizardTemperature,
		metrics: []stepMetric{
			{
				name: models.MetricTemperatureC, label: "Temperature", unit: "°C", decimals: 1,
				read:   func(r *models.SensorReading) *float64 { return r.Temperature },
				assign: func(u *models.VitalsUpsert, v *float64) { u.Temperature = v },
			},
		},
		fetch: func(ctx context.Context, sensor contracts.SensorClient) (*models.SensorReading, error) {
			return sensor.FetchTemperature(ctx)
		},
		fallback: "Unable to read temperature. Please hold still in front of the thermometer and try again.",
	},
	{
		slug:  constvars.StepBloodPressure,
		title: "Blood Pressure",
		route: constvars.RouteWizardBP,
	},
}

func findStep(slug string) (int, *stepDefinition, bool) {
	for i := range wizardSteps {
		if wizardSteps[i].slug == slug {
			return i, &wizardSteps[i], true
		}
	}
	return -1, nil, false
}

func nextRoute(index int) string {
	if index+1 < len(wizardSteps) {
		return wizardSteps[index+1].route
	}
	return constvars.RouteWizardSummary
}

func usable(value *float64) bool {
	return value != nil && !math.IsNaN(*value) && !math.IsInf(*value, 0) && *value > 0
}
