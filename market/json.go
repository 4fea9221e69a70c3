package market

import (
	"encoding/json"
	"io"
)

// ReadJSON decodes a series in the {"t","p"} interchange form.
func ReadJSON(r io.Reader) ([]PricePoint, error) {
	var points []PricePoint
	if err := json.NewDecoder(r).Decode(&points); err != nil {
		return nil, err
	}
	return points, nil
}

// WriteJSON encodes points in the {"t","p"} interchange form.
func WriteJSON(w io.Writer, points []PricePoint) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(points)
}
