package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Product owner errors
	CodeOwnerEmptyKnownAs            Code = "OWNER_EMPTY_KNOWN_AS"
	CodeOwnerInvalidStatus           Code = "OWNER_INVALID_STATUS"
	CodeOwnerInvalidStatusTransition Code = "OWNER_INVALID_STATUS_TRANSITION"
	CodeOwnerStatusDisallowsOp       Code = "OWNER_STATUS_DISALLOWS_OPERATION"

	// Special relationship errors
	CodeRelationshipEmptyOwnerID            Code = "RELATIONSHIP_EMPTY_OWNER_ID"
	CodeRelationshipEmptyName               Code = "RELATIONSHIP_EMPTY_NAME"
	CodeRelationshipInvalidStatus           Code = "RELATIONSHIP_INVALID_STATUS"
	CodeRelationshipInvalidStatusTransition Code = "RELATIONSHIP_INVALID_STATUS_TRANSITION"

	// Legal document errors
	CodeDocumentEmptyOwnerID            Code = "DOCUMENT_EMPTY_OWNER_ID"
	CodeDocumentEmptyKind               Code = "DOCUMENT_EMPTY_KIND"
	CodeDocumentInvalidStatus           Code = "DOCUMENT_INVALID_STATUS"
	CodeDocumentInvalidStatusTransition Code = "DOCUMENT_INVALID_STATUS_TRANSITION"

	// Health and vulnerability record errors
	CodeHealthRecordEmptyOwnerID            Code = "HEALTH_RECORD_EMPTY_OWNER_ID"
	CodeHealthRecordEmptyTitle              Code = "HEALTH_RECORD_EMPTY_TITLE"
	CodeHealthRecordInvalidStatus           Code = "HEALTH_RECORD_INVALID_STATUS"
	CodeHealthRecordInvalidStatusTransition Code = "HEALTH_RECORD_INVALID_STATUS_TRANSITION"

	// List and filter errors
	CodeListInvalidFilter    Code = "LIST_INVALID_FILTER"
	CodeListInvalidPageToken Code = "LIST_INVALID_PAGE_TOKEN"

	// Transport errors
	CodeBadRequest Code = "BAD_REQUEST"

	// Session grant errors
	CodeGrantInvalid Code = "GRANT_INVALID"
	CodeGrantExpired Code = "GRANT_EXPIRED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
	CodeConflict Code = "CONFLICT"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeOwnerEmptyKnownAs,
		CodeOwnerInvalidStatus,
		CodeRelationshipEmptyOwnerID,
		CodeRelationshipEmptyName,
		CodeRelationshipInvalidStatus,
		CodeDocumentEmptyOwnerID,
		CodeDocumentEmptyKind,
		CodeDocumentInvalidStatus,
		CodeHealthRecordEmptyOwnerID,
		CodeHealthRecordEmptyTitle,
		CodeHealthRecordInvalidStatus,
		CodeListInvalidFilter,
		CodeListInvalidPageToken,
		CodeBadRequest:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeOwnerInvalidStatusTransition,
		CodeOwnerStatusDisallowsOp,
		CodeRelationshipInvalidStatusTransition,
		CodeDocumentInvalidStatusTransition,
		CodeHealthRecordInvalidStatusTransition:
		return codes.FailedPrecondition

	case CodeGrantInvalid, CodeGrantExpired:
		return codes.Unauthenticated

	case CodeNotFound:
		return codes.NotFound

	case CodeConflict:
		return codes.AlreadyExists

	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes for the portal API.
func (c Code) HTTPStatus() int {
	switch c.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.FailedPrecondition:
		return http.StatusConflict
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
