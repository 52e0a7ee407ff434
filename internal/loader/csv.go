package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"stockengine/internal/model"
	"stockengine/internal/model/enum"
	"stockengine/pkg/exception"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

const (
	columnOrderType  = "order_type"
	columnTicker     = "ticker"
	columnInstrument = "instrument_id"
	columnQuantity   = "quantity"
	columnPrice      = "price"
)

// Options controls how malformed rows are handled.
type Options struct {
	// Strict fails the whole load on the first malformed row. Otherwise
	// the row is logged and skipped.
	Strict bool
}

// Skipped describes a row dropped by a lenient load.
type Skipped struct {
	Line int
	Err  error
}

// Result is the outcome of a load.
type Result struct {
	Orders  []model.OrderSpec
	Skipped []Skipped
}

// Load reads order records from a CSV file.
func Load(path string, opt Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	res, err := Read(f, opt)
	if err != nil {
		return Result{}, errors.Wrapf(err, "load %s", path)
	}
	return res, nil
}

// Read parses header-addressed order records from r.
func Read(r io.Reader, opt Options) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return Result{}, errors.Wrap(exception.ErrMissingColumn, "empty input")
	}
	if err != nil {
		return Result{}, errors.Wrap(err, "read header")
	}
	idx, err := indexColumns(header)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, errors.Wrap(err, "read record")
		}
		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}

		spec, err := idx.parse(record)
		if err != nil {
			err = errors.Wrapf(err, "line %d", line)
			if opt.Strict {
				return Result{}, err
			}
			logs.Errorf("skip order record, err: %+v", err)
			res.Skipped = append(res.Skipped, Skipped{Line: line, Err: err})
			continue
		}
		res.Orders = append(res.Orders, spec)
	}
	return res, nil
}

type columns struct {
	side, instrument, quantity, price int
	width                             int
}

func indexColumns(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}

	lookup := func(names ...string) (int, error) {
		for _, n := range names {
			if i, ok := pos[n]; ok {
				return i, nil
			}
		}
		return 0, errors.Wrapf(exception.ErrMissingColumn, "column: %s", names[0])
	}

	var c columns
	var err error
	if c.side, err = lookup(columnOrderType); err != nil {
		return columns{}, err
	}
	if c.instrument, err = lookup(columnTicker, columnInstrument); err != nil {
		return columns{}, err
	}
	if c.quantity, err = lookup(columnQuantity); err != nil {
		return columns{}, err
	}
	if c.price, err = lookup(columnPrice); err != nil {
		return columns{}, err
	}
	c.width = max(c.side, c.instrument, c.quantity, c.price) + 1
	return c, nil
}

func (c columns) parse(record []string) (model.OrderSpec, error) {
	if len(record) < c.width {
		return model.OrderSpec{}, errors.Wrapf(exception.ErrMalformedRecord, "want %d fields, got %d", c.width, len(record))
	}
	side, err := enum.ParseSide(record[c.side])
	if err != nil {
		return model.OrderSpec{}, errors.Wrap(exception.ErrMalformedRecord, err.Error())
	}
	instrument, err := parseInt(record[c.instrument], columnTicker)
	if err != nil {
		return model.OrderSpec{}, err
	}
	quantity, err := parseInt(record[c.quantity], columnQuantity)
	if err != nil {
		return model.OrderSpec{}, err
	}
	price, err := parseInt(record[c.price], columnPrice)
	if err != nil {
		return model.OrderSpec{}, err
	}
	return model.OrderSpec{
		Side:         side,
		InstrumentID: instrument,
		Quantity:     quantity,
		Price:        price,
	}, nil
}

func parseInt(field, name string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(exception.ErrMalformedRecord, "%s: %q", name, field)
	}
	return v, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
