package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode returns the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError copies the fields of a raw PostgreSQL error into *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// HandleError converts a low-level database error into a classified *Error.
//
//   - nil stays nil
//   - *pgconn.PgError (possibly wrapped) becomes *Error with AppCode and UserMessage set
//   - anything else is returned unchanged, including pgx.ErrNoRows which
//     repositories translate into their own not-found errors
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return err
	}

	sqlErr = ConvertPgError(pgerr)
	sqlErr.AppCode = appCode(sqlErr.TableName, sqlErr.Code)
	sqlErr.UserMessage = userMessage(sqlErr)

	return sqlErr
}

// appCode builds "<ENTITY>_<ACTION>", e.g. products + UniqueViolation
// => PRODUCT_ALREADY_EXISTS.
func appCode(table string, code Code) string {
	entity := "RECORD"
	if table != "" {
		entity = strings.ToUpper(singular(table))
	}

	action := "ERROR"
	switch code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidTextRepresentation:
		action = "INVALID"
	case SerializationFailure:
		action = "CONFLICT"
	}

	return entity + "_" + action
}

func userMessage(e *Error) string {
	entity := entityName(e.TableName, e.ColumnName)

	switch e.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entity)

	case UniqueViolation:
		if column := uniqueColumn(e.ConstraintName); column != "" {
			return fmt.Sprintf("A %s with this %s already exists", entity, humanize(column))
		}
		return fmt.Sprintf("A %s with this identifier already exists", entity)

	case NotNullViolation:
		field := humanize(e.ColumnName)
		if field == "" {
			field = "field"
		}
		return fmt.Sprintf("The %s is required", field)

	case CheckViolation:
		if field := humanize(e.ColumnName); field != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", field)
		}
		return "One or more values do not meet required conditions"

	case InvalidTextRepresentation:
		return fmt.Sprintf("The %s has an invalid format", entity)

	default:
		return "An error occurred while processing your request"
	}
}

// entityName prefers a "<name>_id" column, then the table name, then "record".
func entityName(table, column string) string {
	column = strings.ToLower(column)
	if strings.HasSuffix(column, "_id") {
		return humanize(strings.TrimSuffix(column, "_id"))
	}
	if table != "" {
		return humanize(singular(table))
	}
	return "record"
}

func singular(s string) string {
	if len(s) > 1 && strings.HasSuffix(strings.ToLower(s), "s") {
		return s[:len(s)-1]
	}
	return s
}

// humanize turns snake_case into Title Case: "unit_price" -> "Unit Price".
func humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeyRegex = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// uniqueColumn infers the column from a constraint named either
// "unique_<table>_<column>" or "<table>_<column>_key".
func uniqueColumn(constraint string) string {
	if strings.HasPrefix(constraint, "unique_") {
		if parts := strings.Split(constraint, "_"); len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if m := uniqueKeyRegex.FindStringSubmatch(constraint); len(m) > 1 {
		return m[1]
	}
	return ""
}
