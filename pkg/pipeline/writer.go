package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ipamops/invnorm/pkg/inventory"
)

// WriteClean emits the cleaned records with the fixed ordered header. Every
// declared column is always present.
func WriteClean(path string, records []inventory.NormalizedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create clean output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(inventory.Columns); err != nil {
		return fmt.Errorf("write clean header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(rec.Row()); err != nil {
			return fmt.Errorf("write clean row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteAnomalies emits the anomaly report as a JSON array, in detection
// order.
func WriteAnomalies(path string, anomalies []inventory.Anomaly) error {
	if anomalies == nil {
		anomalies = []inventory.Anomaly{}
	}
	data, err := json.MarshalIndent(anomalies, "", "  ")
	if err != nil {
		return fmt.Errorf("encode anomalies: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write anomalies: %w", err)
	}
	return nil
}
