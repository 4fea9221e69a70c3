package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	trades    *csv.Writer
	snapshots *csv.Writer
	tf, sf    *os.File
}

func NewCSV(tradesPath, snapshotsPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(snapshotsPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	sw := csv.NewWriter(sf)

	if err := tw.Write([]string{"time", "action", "btc_price", "strike", "premium", "btc_balance", "usd_balance"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"time", "btc_price", "btc_balance", "usd_balance", "portfolio_value"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{tw, sw, tf, sf}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.Time.Format(time.RFC3339),
		string(t.Action),
		f(t.BTCPrice),
		t.Strike.String(),
		t.Premium.String(),
		t.BTCBalance.String(),
		t.USDBalance.String(),
	})
	if err != nil {
		return err
	}

	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordSnapshot(s Snapshot) error {
	err := j.snapshots.Write([]string{
		s.Time.Format(time.RFC3339),
		f(s.BTCPrice),
		s.BTCBalance.String(),
		s.USDBalance.String(),
		s.Value.String(),
	})
	if err != nil {
		return err
	}

	j.snapshots.Flush()
	return j.snapshots.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.snapshots.Flush()
	if err := j.snapshots.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.sf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
