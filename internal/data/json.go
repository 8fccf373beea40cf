package data

import (
	"encoding/json"
	"os"

	"imbalance-report/internal/model"
)

// LoadSystemPricesJSON reads a saved Elexon system-prices response from disk.
// Used by the demo command and tests to run the pipeline without the network.
func LoadSystemPricesJSON(path string) (*model.SystemPricesResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp model.SystemPricesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
