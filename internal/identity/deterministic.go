package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-pagebuilder"

// UUID derives a deterministic UUID from key with go-hashid. Keys are
// prefixed per entity by the helpers below so ids never collide across
// tables.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ProjectDocumentUUID is the record id of the document stored for a project.
func ProjectDocumentUUID(projectID string) uuid.UUID {
	return UUID(namespace + ":project_document:" + strings.TrimSpace(projectID))
}

// TemplateCategoryUUID is the record id of a template category code.
func TemplateCategoryUUID(code string) uuid.UUID {
	return UUID(namespace + ":template_category:" + strings.ToLower(strings.TrimSpace(code)))
}

// PageTemplateUUID is the record id of a template code within a category.
func PageTemplateUUID(categoryID uuid.UUID, code string) uuid.UUID {
	return UUID(namespace + ":page_template:" + categoryID.String() + ":" + strings.ToLower(strings.TrimSpace(code)))
}
