package model

import "github.com/sqlercore/sqler/errs"

func errInvalidOptions(detail string) error {
	return errs.NewInvalidRequest(detail)
}
