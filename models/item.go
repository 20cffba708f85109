package models

// Item mirrors the inventory item schema. ItemCode is unique across all items; the
// storage layer enforces it.
type Item struct {
	ID           string   `json:"_id" bson:"_id,omitempty" db:"id"`
	ItemCode     string   `json:"ItemCode" bson:"ItemCode" db:"item_code" validate:"required"`
	ItemName     string   `json:"ItemName" bson:"ItemName" db:"item_name" validate:"required"`
	SAC_HSN_Code string   `json:"SAC_HSN_Code,omitempty" bson:"SAC_HSN_Code,omitempty" db:"sac_hsn_code"`
	ItemType     string   `json:"ItemType,omitempty" bson:"ItemType,omitempty" db:"item_type"`
	SerialNumber string   `json:"SerialNumber,omitempty" bson:"SerialNumber,omitempty" db:"serial_number"`
	IGST_Rate    *float64 `json:"IGST_Rate,omitempty" bson:"IGST_Rate,omitempty" db:"igst_rate" validate:"omitempty,gte=0,lte=100"`
	CGST_Rate    *float64 `json:"CGST_Rate,omitempty" bson:"CGST_Rate,omitempty" db:"cgst_rate" validate:"omitempty,gte=0,lte=100"`
	SGST_Rate    *float64 `json:"SGST_Rate,omitempty" bson:"SGST_Rate,omitempty" db:"sgst_rate" validate:"omitempty,gte=0,lte=100"`
	UTGST_Rate   *float64 `json:"UTGST_Rate,omitempty" bson:"UTGST_Rate,omitempty" db:"utgst_rate" validate:"omitempty,gte=0,lte=100"`
}

type ItemPage struct {
	Items      []Item `json:"items"`
	TotalPages int    `json:"totalPages"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
}
