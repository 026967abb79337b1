package events

import (
	"encoding/json"
	"time"

	"github.com/sebuszqo/BillPlatform/internal/finance/domain"
)

const BillRecordedType = "bill.recorded"

// BillRecordedMessage is published after a bill has been stored.
type BillRecordedMessage struct {
	Type       string    `json:"type"`
	BillID     string    `json:"billID"`
	UserID     string    `json:"indUserID"`
	CategoryID string    `json:"billTypeID"`
	Amount     string    `json:"amount"`
	BillDate   time.Time `json:"billDate"`
	Remark     string    `json:"remark,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

func NewBillRecordedMessage(bill domain.Bill, recordedAt time.Time) *BillRecordedMessage {
	return &BillRecordedMessage{
		Type:       BillRecordedType,
		BillID:     bill.ID,
		UserID:     bill.UserID,
		CategoryID: bill.CategoryID,
		Amount:     bill.Amount.String(),
		BillDate:   bill.BillDate,
		Remark:     bill.Remark,
		RecordedAt: recordedAt.UTC(),
	}
}

func (m *BillRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
