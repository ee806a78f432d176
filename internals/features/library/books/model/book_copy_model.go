// file: internals/features/library/books/model/book_copy_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status eksemplar. Hanya kolom ini yang mutable lewat sirkulasi;
// available ⇔ tidak ada loan aktif, borrowed ⇔ tepat satu loan aktif.
const (
	CopyStatusAvailable   = "available"
	CopyStatusBorrowed    = "borrowed"
	CopyStatusReserved    = "reserved"
	CopyStatusMaintenance = "maintenance"
	CopyStatusLost        = "lost"
	CopyStatusDamaged     = "damaged"
)

const (
	CopyConditionNew  = "new"
	CopyConditionGood = "good"
	CopyConditionFair = "fair"
	CopyConditionPoor = "poor"
)

type BookCopyModel struct {
	BookCopyID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:book_copy_id" json:"book_copy_id"`
	BookCopyBookID uuid.UUID `gorm:"type:uuid;not null;index;column:book_copy_book_id" json:"book_copy_book_id"`

	BookCopyBarcode string `gorm:"type:varchar(50);not null;uniqueIndex;column:book_copy_barcode" json:"book_copy_barcode"`

	BookCopyStatus    string `gorm:"type:varchar(20);not null;default:'available';index;column:book_copy_status" json:"book_copy_status"`
	BookCopyCondition string `gorm:"type:varchar(10);not null;default:'good';column:book_copy_condition" json:"book_copy_condition"`

	BookCopyLocation *string `gorm:"type:varchar(100);column:book_copy_location" json:"book_copy_location,omitempty"`
	BookCopyShelf    *string `gorm:"type:varchar(50);column:book_copy_shelf" json:"book_copy_shelf,omitempty"`
	BookCopySection  *string `gorm:"type:varchar(50);column:book_copy_section" json:"book_copy_section,omitempty"`
	BookCopyFloor    *string `gorm:"type:varchar(20);column:book_copy_floor" json:"book_copy_floor,omitempty"`

	BookCopyAcquisitionDate  *time.Time `gorm:"type:date;column:book_copy_acquisition_date" json:"book_copy_acquisition_date,omitempty"`
	BookCopyAcquisitionPrice *float64   `gorm:"type:numeric(10,2);column:book_copy_acquisition_price" json:"book_copy_acquisition_price,omitempty"`

	BookCopyNotes *string `gorm:"type:text;column:book_copy_notes" json:"book_copy_notes,omitempty"`

	BookCopyCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:book_copy_created_at" json:"book_copy_created_at"`
	BookCopyUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:book_copy_updated_at" json:"book_copy_updated_at"`
	BookCopyDeletedAt gorm.DeletedAt `gorm:"column:book_copy_deleted_at;index" json:"book_copy_deleted_at,omitempty"`

	Book *BookModel `gorm:"foreignKey:BookCopyBookID;references:BookID" json:"book,omitempty"`
}

func (BookCopyModel) TableName() string { return "book_copies" }
