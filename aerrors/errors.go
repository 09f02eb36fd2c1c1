package aerrors

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	MetaRoute       = "route"
	MetaPath        = "path"
	MetaPermissions = "permissions"
	MetaRoles       = "roles"
	MetaRequireAll  = "require_all"
	MetaTenantID    = "tenant_id"
	MetaProjectID   = "project_id"
	MetaUserID      = "user_id"
	MetaProvider    = "provider"
	MetaStore       = "store"
	MetaAdapter     = "adapter"
	MetaOperation   = "operation"
	MetaReturnTo    = "return_to"
)

const (
	TextCodeUnauthenticated     = "PRINCIPAL_REQUIRED"
	TextCodeUnauthorized        = "ACCESS_DENIED"
	TextCodeSnapshotNotReady    = "SNAPSHOT_NOT_READY"
	TextCodeTenantNotSelected   = "TENANT_NOT_SELECTED"
	TextCodeProjectNotSelected  = "PROJECT_NOT_SELECTED"
	TextCodeRouteUnknown        = "ROUTE_UNKNOWN"
	TextCodeStoreRequired       = "SELECTION_STORE_REQUIRED"
	TextCodeManagerRequired     = "SELECTION_MANAGER_REQUIRED"
	TextCodeProviderRequired    = "IDENTITY_PROVIDER_REQUIRED"
	TextCodeCatalogRequired     = "ROUTE_CATALOG_REQUIRED"
	TextCodeResolverRequired    = "RESOLVER_REQUIRED"
	TextCodeStoreReadFailed     = "SELECTION_READ_FAILED"
	TextCodeStoreWriteFailed    = "SELECTION_WRITE_FAILED"
	TextCodeProviderFetchFailed = "IDENTITY_FETCH_FAILED"
	TextCodeLoginFailed         = "LOGIN_FAILED"
	TextCodeLogoutFailed        = "LOGOUT_FAILED"
	TextCodeAdapterFailed       = "ADAPTER_FAILED"
	TextCodeRouteInvalid        = "ROUTE_INVALID"
)

// HTTP status codes for the auth sentinels. go-accessgate never writes
// responses itself; hosts map these onto their transport.
const (
	codeUnauthorized = 401
	codeForbidden    = 403
)

var (
	ErrUnauthenticated    = newSentinel(goerrors.CategoryOperation, codeUnauthorized, TextCodeUnauthenticated, "authenticated principal required")
	ErrUnauthorized       = newSentinel(goerrors.CategoryOperation, codeForbidden, TextCodeUnauthorized, "principal lacks required permissions or roles")
	ErrSnapshotNotReady   = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeSnapshotNotReady, "accessible tenants snapshot not loaded")
	ErrTenantNotSelected  = newSentinel(goerrors.CategoryBadInput, goerrors.CodeBadRequest, TextCodeTenantNotSelected, "tenant selection required")
	ErrProjectNotSelected = newSentinel(goerrors.CategoryBadInput, goerrors.CodeBadRequest, TextCodeProjectNotSelected, "project selection required")
	ErrRouteUnknown       = newSentinel(goerrors.CategoryBadInput, goerrors.CodeBadRequest, TextCodeRouteUnknown, "route is not in the catalog")
	ErrStoreRequired      = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeStoreRequired, "selection store not configured")
	ErrManagerRequired    = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeManagerRequired, "selection manager is required")
	ErrProviderRequired   = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeProviderRequired, "identity provider not configured")
	ErrCatalogRequired    = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeCatalogRequired, "route catalog not configured")
	ErrResolverRequired   = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeResolverRequired, "resolver is required")
)

func newSentinel(category goerrors.Category, code int, textCode, message string) *goerrors.Error {
	err := goerrors.New(message, category).WithTextCode(textCode)
	if code != 0 {
		err.WithCode(code)
	}
	return err
}

func IsSentinel(err error) bool {
	return err == ErrUnauthenticated ||
		err == ErrUnauthorized ||
		err == ErrSnapshotNotReady ||
		err == ErrTenantNotSelected ||
		err == ErrProjectNotSelected ||
		err == ErrRouteUnknown ||
		err == ErrStoreRequired ||
		err == ErrManagerRequired ||
		err == ErrProviderRequired ||
		err == ErrCatalogRequired ||
		err == ErrResolverRequired
}

func WrapSentinel(sentinel *goerrors.Error, message string, meta map[string]any) *goerrors.Error {
	if sentinel == nil {
		return nil
	}
	if message == "" {
		message = sentinel.Message
	}
	err := goerrors.New(message, sentinel.Category).
		WithTextCode(sentinel.TextCode).
		WithCode(sentinel.Code).
		WithSeverity(sentinel.Severity)
	err.Source = sentinel
	if meta != nil {
		err.WithMetadata(meta)
	}
	return err
}

func Wrap(err error, category goerrors.Category, textCode, message string, meta map[string]any) *goerrors.Error {
	if err == nil {
		return nil
	}
	if IsSentinel(err) {
		if sentinel, ok := err.(*goerrors.Error); ok {
			return WrapSentinel(sentinel, "", meta)
		}
	}
	if rich, ok := err.(*goerrors.Error); ok {
		clone := rich.Clone()
		if clone.TextCode == "" && textCode != "" {
			clone.TextCode = textCode
		}
		if clone.Message == "" && message != "" {
			clone.Message = message
		}
		if meta != nil {
			clone.WithMetadata(meta)
		}
		return clone
	}
	if message == "" {
		message = err.Error()
	}
	wrapped := goerrors.New(message, category).WithTextCode(textCode)
	wrapped.Source = err
	if meta != nil {
		wrapped.WithMetadata(meta)
	}
	return wrapped
}

func New(category goerrors.Category, textCode, message string, meta map[string]any) *goerrors.Error {
	err := goerrors.New(message, category).WithTextCode(textCode)
	if meta != nil {
		err.WithMetadata(meta)
	}
	return err
}

func NewBadInput(textCode, message string, meta map[string]any) *goerrors.Error {
	return New(goerrors.CategoryBadInput, textCode, message, meta)
}

func WrapBadInput(err error, textCode, message string, meta map[string]any) *goerrors.Error {
	return Wrap(err, goerrors.CategoryBadInput, textCode, message, meta)
}

func NewOperation(textCode, message string, meta map[string]any) *goerrors.Error {
	return New(goerrors.CategoryOperation, textCode, message, meta)
}

func WrapOperation(err error, textCode, message string, meta map[string]any) *goerrors.Error {
	return Wrap(err, goerrors.CategoryOperation, textCode, message, meta)
}

func NewExternal(textCode, message string, meta map[string]any) *goerrors.Error {
	return New(goerrors.CategoryExternal, textCode, message, meta)
}

func WrapExternal(err error, textCode, message string, meta map[string]any) *goerrors.Error {
	return Wrap(err, goerrors.CategoryExternal, textCode, message, meta)
}

func NewInternal(textCode, message string, meta map[string]any) *goerrors.Error {
	return New(goerrors.CategoryInternal, textCode, message, meta)
}

func WrapInternal(err error, textCode, message string, meta map[string]any) *goerrors.Error {
	return Wrap(err, goerrors.CategoryInternal, textCode, message, meta)
}

func As(err error) (*goerrors.Error, bool) {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich, true
	}
	return nil, false
}
