package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeOwnerEmptyKnownAs                   = "OWNER_EMPTY_KNOWN_AS"
	CodeOwnerInvalidStatus                  = "OWNER_INVALID_STATUS"
	CodeOwnerInvalidStatusTransition        = "OWNER_INVALID_STATUS_TRANSITION"
	CodeOwnerStatusDisallowsOp              = "OWNER_STATUS_DISALLOWS_OPERATION"
	CodeRelationshipEmptyOwnerID            = "RELATIONSHIP_EMPTY_OWNER_ID"
	CodeRelationshipEmptyName               = "RELATIONSHIP_EMPTY_NAME"
	CodeRelationshipInvalidStatus           = "RELATIONSHIP_INVALID_STATUS"
	CodeRelationshipInvalidStatusTransition = "RELATIONSHIP_INVALID_STATUS_TRANSITION"
	CodeDocumentEmptyOwnerID                = "DOCUMENT_EMPTY_OWNER_ID"
	CodeDocumentEmptyKind                   = "DOCUMENT_EMPTY_KIND"
	CodeDocumentInvalidStatus               = "DOCUMENT_INVALID_STATUS"
	CodeDocumentInvalidStatusTransition     = "DOCUMENT_INVALID_STATUS_TRANSITION"
	CodeHealthRecordEmptyOwnerID            = "HEALTH_RECORD_EMPTY_OWNER_ID"
	CodeHealthRecordEmptyTitle              = "HEALTH_RECORD_EMPTY_TITLE"
	CodeHealthRecordInvalidStatus           = "HEALTH_RECORD_INVALID_STATUS"
	CodeHealthRecordInvalidStatusTransition = "HEALTH_RECORD_INVALID_STATUS_TRANSITION"
	CodeListInvalidFilter                   = "LIST_INVALID_FILTER"
	CodeListInvalidPageToken                = "LIST_INVALID_PAGE_TOKEN"
	CodeBadRequest                          = "BAD_REQUEST"
	CodeGrantInvalid                        = "GRANT_INVALID"
	CodeGrantExpired                        = "GRANT_EXPIRED"
	CodeNotFound                            = "NOT_FOUND"
	CodeConflict                            = "CONFLICT"
)

// localeMessages holds user-facing copy per supported locale. British and
// American copy currently match; they diverge only when product asks for it.
var localeMessages = map[string]map[Code]string{
	"en-US": enUSMessages,
	"en-GB": enUSMessages,
}

var enUSMessages = map[Code]string{
	CodeOwnerEmptyKnownAs:                   "A known-as name is required.",
	CodeOwnerInvalidStatus:                  "Status must be one of active, lapsed or deceased.",
	CodeOwnerInvalidStatusTransition:        "A client cannot move from {{.from}} to {{.to}}.",
	CodeOwnerStatusDisallowsOp:              "This action is not available while the client is {{.status}}.",
	CodeRelationshipEmptyOwnerID:            "A client is required for the relationship.",
	CodeRelationshipEmptyName:               "A relationship name is required.",
	CodeRelationshipInvalidStatus:           "Relationship status must be active or inactive.",
	CodeRelationshipInvalidStatusTransition: "A relationship cannot move from {{.from}} to {{.to}}.",
	CodeDocumentEmptyOwnerID:                "A client is required for the document.",
	CodeDocumentEmptyKind:                   "A document type is required.",
	CodeDocumentInvalidStatus:               "Document status must be signed, lapsed or registered.",
	CodeDocumentInvalidStatusTransition:     "A document cannot move from {{.from}} to {{.to}}.",
	CodeHealthRecordEmptyOwnerID:            "A client is required for the health record.",
	CodeHealthRecordEmptyTitle:              "A health record title is required.",
	CodeHealthRecordInvalidStatus:           "Health record status must be active, inactive or deceased.",
	CodeHealthRecordInvalidStatusTransition: "A health record cannot move from {{.from}} to {{.to}}.",
	CodeListInvalidFilter:                   "The list filter expression is not valid.",
	CodeListInvalidPageToken:                "The page token is not valid.",
	CodeBadRequest:                          "The request could not be understood.",
	CodeGrantInvalid:                        "The session grant is not valid.",
	CodeGrantExpired:                        "The session grant has expired.",
	CodeNotFound:                            "The requested record was not found.",
	CodeConflict:                            "The record conflicts with an existing one.",
}
