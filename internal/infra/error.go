package infra

import (
	"context"
	"errors"
	"log/slog"

	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/pkg/pgconv"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(kind RepositoryErrorKind, msg string, err error) error {
	level := slog.LevelDebug
	if kind == KindDBFailure {
		level = slog.LevelError
	}
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
		err = errs.Wrap(err, msg)
	}
	slog.Log(context.Background(), level, "Repository error: "+msg, logArgs...)

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

// ClassifyPgErr maps a driver error to a repository error kind.
func ClassifyPgErr(msg string, err error) error {
	switch {
	case pgconv.IsNoRows(err), pgconv.IsInvalidText(err):
		return WrapRepoErr(KindNotFound, msg, err)
	case pgconv.IsUniqueViolation(err):
		return WrapRepoErr(KindDuplicateKey, msg, err)
	case pgconv.IsCheckViolation(err):
		return WrapRepoErr(KindCheckViolated, msg, err)
	default:
		return WrapRepoErr(KindDBFailure, msg, err)
	}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound      RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure     RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey  RepositoryErrorKind = "DUPLICATE_KEY"
	KindCheckViolated RepositoryErrorKind = "CHECK_VIOLATED"
)
