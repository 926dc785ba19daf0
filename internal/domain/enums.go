package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// DocumentKind identifies which side of the reconciliation a document belongs to.
type DocumentKind string

const (
	DocumentKindPurchaseOrder DocumentKind = "purchase_order"
	DocumentKindInvoice       DocumentKind = "invoice"
)

// FieldKind is the closed vocabulary of fields the engine knows how to compare.
// Each kind has exactly one comparison rule bound to it.
type FieldKind string

const (
	FieldGSTIN          FieldKind = "gstin"           // tax identifier
	FieldHSNCode        FieldKind = "hsn_code"        // harmonized commodity code
	FieldUdyamNumber    FieldKind = "udyam_number"    // MSME/UDYAM registration number
	FieldPartyName      FieldKind = "party_name"      // counterparty legal name
	FieldTotalAmount    FieldKind = "total_amount"    // document grand total
	FieldDocumentNumber FieldKind = "document_number" // invoice/PO number
	FieldDocumentDate   FieldKind = "document_date"   // document issue date
	FieldContactName    FieldKind = "contact_name"    // signing contact person
)

// AllFieldKinds lists every field kind in a fixed order. Iterating this slice
// instead of a map keeps reconciliation output deterministic.
var AllFieldKinds = []FieldKind{
	FieldGSTIN,
	FieldHSNCode,
	FieldUdyamNumber,
	FieldPartyName,
	FieldTotalAmount,
	FieldDocumentNumber,
	FieldDocumentDate,
	FieldContactName,
}

// MatchStatus is the verdict for a single field or a whole document pair.
type MatchStatus string

const (
	StatusMatch    MatchStatus = "match"
	StatusPartial  MatchStatus = "partial"
	StatusMismatch MatchStatus = "mismatch"
	// StatusPending marks a field whose value could not be settled
	// (registry lookup unresolved). It never appears as an overall status.
	StatusPending MatchStatus = "pending"
)
