package trivy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/AMSONI777/docker-hardening-project/internal/model"
)

// LoadReports reads and decodes a Trivy report file.
// The whole file is read before decoding; reports are small enough that
// streaming would add complexity without benefit.
//
// Returns ErrReportNotFound when the path does not resolve to a readable
// file and ErrReportDecode when the content is not valid JSON, both
// wrapped with the file path for display.
func LoadReports(path string) ([]model.Report, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrReportNotFound, path)
		}
		return nil, fmt.Errorf("could not read report file %s: %w", path, err)
	}

	reports, err := DecodeReports(data)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %v", ErrReportDecode, path, err)
	}
	return reports, nil
}

// DecodeReports decodes report JSON that is either a single report
// object or an array of report objects.
func DecodeReports(data []byte) ([]model.Report, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	if trimmed[0] == '[' {
		var reports []model.Report
		if err := json.Unmarshal(trimmed, &reports); err != nil {
			return nil, err
		}
		return reports, nil
	}

	var report model.Report
	if err := json.Unmarshal(trimmed, &report); err != nil {
		return nil, err
	}
	return []model.Report{report}, nil
}
