package exception

import "errors"

var (
	ErrReportNilStore = errors.New("report: nil store")
)
