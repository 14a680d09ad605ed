// Package export loads demand series from CSV and writes forecast,
// optimization and accuracy output as CSV or JSON for the CLI.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/errors"
	"github.com/staybase/demandcast/pkg/models"
)

// demand CSV layout: timestamp,demand,property_id,service_type followed
// by optional factor columns named after the factor.
var factorColumns = []string{
	constants.FactorWeather,
	constants.FactorEvents,
	constants.FactorSeasonality,
	constants.FactorHolidays,
	constants.FactorEconomic,
	constants.FactorCompetitor,
}

// LoadDemandCSV reads demand observations from CSV. The first row must
// be a header; timestamps accept RFC 3339 or plain dates (2006-01-02).
func LoadDemandCSV(r io.Reader) ([]models.DemandObservation, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeValidation, errors.CodeInvalidInput, "failed to parse CSV")
	}
	if len(rows) < 2 {
		return nil, errors.NewValidationError(errors.CodeInvalidInput, "CSV must contain a header and at least one row")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[name] = i
	}
	for _, required := range []string{"timestamp", "demand"} {
		if _, ok := columns[required]; !ok {
			return nil, errors.NewValidationError(errors.CodeInvalidInput,
				fmt.Sprintf("CSV missing required column %q", required))
		}
	}

	observations := make([]models.DemandObservation, 0, len(rows)-1)
	for lineNo, row := range rows[1:] {
		timestamp, err := parseTimestamp(row[columns["timestamp"]])
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrorTypeValidation, errors.CodeInvalidInput,
				fmt.Sprintf("bad timestamp on line %d", lineNo+2))
		}
		demand, err := strconv.ParseFloat(row[columns["demand"]], 64)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrorTypeValidation, errors.CodeInvalidInput,
				fmt.Sprintf("bad demand on line %d", lineNo+2))
		}

		obs := models.DemandObservation{
			Timestamp: timestamp,
			Demand:    demand,
		}
		if i, ok := columns["property_id"]; ok && i < len(row) {
			obs.PropertyID = row[i]
		}
		if i, ok := columns["service_type"]; ok && i < len(row) {
			obs.ServiceType = row[i]
		}
		for _, factor := range factorColumns {
			i, ok := columns[factor]
			if !ok || i >= len(row) || row[i] == "" {
				continue
			}
			value, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, errors.WrapError(err, errors.ErrorTypeValidation, errors.CodeInvalidInput,
					fmt.Sprintf("bad %s value on line %d", factor, lineNo+2))
			}
			if obs.Factors == nil {
				obs.Factors = models.ExogenousFactors{}
			}
			obs.Factors[factor] = value
		}
		observations = append(observations, obs)
	}
	return observations, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", s)
}

// WriteForecastCSV writes forecast points with one row per period.
func WriteForecastCSV(w io.Writer, result *models.ForecastResult) error {
	writer := csv.NewWriter(w)
	header := []string{
		"timestamp", "predicted_demand", "lower", "upper",
		"volatility", "seasonality", "trend", "external_impact",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, p := range result.Points {
		row := []string{
			p.Timestamp.Format(time.RFC3339),
			formatFloat(p.PredictedDemand),
			formatFloat(p.Confidence.Lower),
			formatFloat(p.Confidence.Upper),
			formatFloat(p.Volatility),
			formatFloat(p.Seasonality),
			formatFloat(p.Trend),
			formatFloat(p.ExternalImpact),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON writes any result type as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
