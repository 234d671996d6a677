package errors

import (
	zerror "github.com/0chain/errors"
)

const (
	MissingConfigErrCode        = "missing_config"
	InvalidConfigErrCode        = "invalid_config"
	ListingFailedErrCode        = "listing_failed"
	ExistenceCheckFailedErrCode = "existence_check_failed"
	FetchFailedErrCode          = "fetch_failed"
	WriteFailedErrCode          = "write_failed"
	ExportFailedErrCode         = "export_failed"
)

// New builds a coded error carrying the given message.
func New(code, msg string) error {
	return zerror.New(code, msg)
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}

	switch err := err.(type) {
	case *zerror.Error:
		if err.Code == code {
			return true
		}
	}
	return false
}

func IsMissingConfigError(err error) bool {
	return hasCode(err, MissingConfigErrCode)
}

func IsInvalidConfigError(err error) bool {
	return hasCode(err, InvalidConfigErrCode)
}

func IsListingError(err error) bool {
	return hasCode(err, ListingFailedErrCode)
}

func IsExportError(err error) bool {
	return hasCode(err, ExportFailedErrCode)
}
