package dataset

import "time"

// EquipmentRecord is one validated row of an uploaded CSV.
type EquipmentRecord struct {
	Name        string  `json:"equipment_name"`
	Type        string  `json:"equipment_type"`
	Flowrate    float64 `json:"flowrate"`
	Pressure    float64 `json:"pressure"`
	Temperature float64 `json:"temperature"`
}

// Aggregate holds the summary statistics computed once per dataset.
type Aggregate struct {
	TotalRecords     int            `json:"total_records"`
	AvgFlowrate      float64        `json:"avg_flowrate"`
	AvgPressure      float64        `json:"avg_pressure"`
	AvgTemperature   float64        `json:"avg_temperature"`
	TypeDistribution map[string]int `json:"type_distribution"`
}

// Dataset is the persisted unit: one upload with its rows and aggregate.
// Datasets are immutable after creation; there is no edit operation.
type Dataset struct {
	ID         string            `json:"id"`
	OwnerID    string            `json:"owner_id"`
	Name       string            `json:"name"`
	UploadedAt time.Time         `json:"uploaded_at"`
	Records    []EquipmentRecord `json:"records,omitempty"`
	Aggregate  Aggregate         `json:"aggregate"`
}

// Summary is a lightweight representation for listing.
type Summary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	UploadedAt   time.Time `json:"uploaded_at"`
	TotalRecords int       `json:"total_records"`
}
