package models

import (
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"

	"github.com/google/uuid"
)

// RecordModel is one rendered parameter, stored as part of the JSON records column.
type RecordModel struct {
	Dir  string `json:"dir"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// CallEventModel is the GORM database model for call events (infrastructure concern)
type CallEventModel struct {
	ID         string        `gorm:"primaryKey;type:uuid"`
	RunID      string        `gorm:"not null;index:idx_call_events_run_seq,priority:1;type:varchar(36)"`
	Seq        uint64        `gorm:"not null;index:idx_call_events_run_seq,priority:2"`
	Operation  string        `gorm:"not null;index;type:varchar(64)"`
	Phase      string        `gorm:"not null;type:varchar(8)"`
	Status     uint          `gorm:"not null"`
	StatusName string        `gorm:"type:varchar(64)"`
	Records    []RecordModel `gorm:"serializer:json"`
	OccurredAt time.Time     `gorm:"not null;index"`
	DurationNs int64
}

// TableName specifies the table name for GORM
func (CallEventModel) TableName() string {
	return "call_events"
}

// ToDomain converts GORM model to domain entity
func (m *CallEventModel) ToDomain() *trace.CallEvent {
	var records []trace.Record
	if len(m.Records) > 0 {
		records = make([]trace.Record, len(m.Records))
		for i, r := range m.Records {
			records[i] = trace.Record{Name: r.Name, Dir: r.Dir, Text: r.Text}
		}
	}

	return &trace.CallEvent{
		RunID:      m.RunID,
		Seq:        m.Seq,
		Operation:  m.Operation,
		Phase:      trace.Phase(m.Phase),
		Status:     m.Status,
		StatusName: m.StatusName,
		Records:    records,
		Time:       m.OccurredAt,
		Duration:   time.Duration(m.DurationNs),
	}
}

// FromDomain converts domain entity to GORM model. A new ID is assigned when the
// model has none.
func (m *CallEventModel) FromDomain(e *trace.CallEvent) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.RunID = e.RunID
	m.Seq = e.Seq
	m.Operation = e.Operation
	m.Phase = string(e.Phase)
	m.Status = e.Status
	m.StatusName = e.StatusName
	m.OccurredAt = e.Time
	m.DurationNs = int64(e.Duration)

	m.Records = make([]RecordModel, len(e.Records))
	for i, r := range e.Records {
		m.Records[i] = RecordModel{Dir: r.Dir, Name: r.Name, Text: r.Text}
	}
}
