package cache

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"tailwatch/pkg/model"
)

const dateLayout = "2006-01-02"

// EncodeSeries renders a price series as CSV with a Date index column and a
// Close column, the on-disk format of cached price data.
func EncodeSeries(series model.PriceSeries) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Close"}); err != nil {
		return nil, err
	}
	for _, p := range series {
		rec := []string{
			p.Date.Format(dateLayout),
			strconv.FormatFloat(p.Close, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSeries parses the CSV produced by EncodeSeries.
func DecodeSeries(data []byte) (model.PriceSeries, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing cached series: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing cached series: empty file")
	}
	if len(records[0]) < 2 || records[0][0] != "Date" {
		return nil, fmt.Errorf("parsing cached series: unexpected header %v", records[0])
	}

	series := make(model.PriceSeries, 0, len(records)-1)
	for _, rec := range records[1:] {
		date, err := time.Parse(dateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("parsing cached series date %q: %w", rec[0], err)
		}
		closePx, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing cached series close %q: %w", rec[1], err)
		}
		series = append(series, model.PricePoint{Date: date, Close: closePx})
	}
	return series, nil
}
