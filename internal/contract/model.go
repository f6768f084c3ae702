package contract

import (
	"time"

	"gorm.io/gorm"
)

// Contract statuses.
const (
	StatusOnGoing   = "ON_GOING"
	StatusDone      = "DONE"
	StatusForfeited = "FORFEITED"
	StatusDeleted   = "DELETED"
)

// Payment types.
const (
	PaymentTypeCash        = "CASH"
	PaymentTypeInstallment = "INSTALLMENT"
)

// Installment types.
const (
	InstallmentStraightMonthly = "STRAIGHT_MONTHLY_PAYMENT"
)

// Down payment types.
const (
	DownPaymentFull    = "FULL_DOWN_PAYMENT"
	DownPaymentPartial = "PARTIAL_DOWN_PAYMENT"
)

// Down payment statuses.
const (
	DownPaymentOnGoing   = "ON_GOING"
	DownPaymentDone      = "DONE"
	DownPaymentForfeited = "FORFEITED"
)

// Contract is the financial agreement for one client and lot. The full
// amortization schedule is never stored: the anchor fields below plus the
// payment history reconstruct it deterministically.
type Contract struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ClientID      uint `gorm:"not null;index" json:"clientId"`
	AgentID       uint `gorm:"not null;index" json:"agentId"`
	LotID         uint `gorm:"not null;index" json:"lotId"`
	ReservationID uint `gorm:"not null;index" json:"reservationId"`

	PaymentType     string `gorm:"size:20;not null" json:"paymentType"`
	InstallmentType string `gorm:"size:40" json:"installmentType,omitempty"`

	// Pricing.
	SqmPrice           float64 `gorm:"not null" json:"sqmPrice"`
	TotalLotPrice      float64 `gorm:"not null" json:"totalLotPrice"`
	MiscellaneousTotal float64 `gorm:"not null;default:0" json:"miscellaneousTotal"`
	TCP                float64 `gorm:"column:tcp;not null" json:"tcp"`

	// Down payment.
	DownPaymentType         string  `gorm:"size:30" json:"downPaymentType,omitempty"`
	DownPayment             float64 `gorm:"not null;default:0" json:"downPayment"` // percent of TCP
	DownPaymentTerms        int     `gorm:"not null;default:0" json:"downPaymentTerms"`
	TotalDownPayment        float64 `gorm:"not null;default:0" json:"totalDownPayment"`
	TotalDownPaymentBalance float64 `gorm:"not null;default:0" json:"totalDownPaymentBalance"`
	TotalMonthlyDown        float64 `gorm:"not null;default:0" json:"totalMonthlyDown"`
	DownPaymentStatus       string  `gorm:"size:20" json:"downPaymentStatus,omitempty"`

	// Installment.
	Terms         int     `gorm:"not null;default:0" json:"terms"`
	TotalMonthly  float64 `gorm:"not null;default:0" json:"totalMonthly"`
	Interest      float64 `gorm:"not null;default:0" json:"interest"` // percent
	InterestTotal float64 `gorm:"not null;default:0" json:"interestTotal"`

	// Running state.
	Balance       float64 `gorm:"not null" json:"balance"`
	ExcessPayment float64 `gorm:"not null;default:0" json:"excessPayment"`
	PenaltyAmount float64 `gorm:"not null;default:0" json:"penaltyAmount"`
	PenaltyCount  int     `gorm:"not null;default:0" json:"penaltyCount"`
	Status        string  `gorm:"size:20;not null;default:'ON_GOING';index" json:"status"`

	// Schedule anchors.
	PaymentStartedDate  time.Time `gorm:"not null" json:"paymentStartedDate"`
	NextPaymentDate     time.Time `gorm:"not null" json:"nextPaymentDate"`
	PaymentLastDate     time.Time `gorm:"not null" json:"paymentLastDate"`
	RecurringPaymentDay int       `gorm:"not null" json:"recurringPaymentDay"`

	AgentCommissionTotal float64 `gorm:"not null;default:0" json:"agentCommissionTotal"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TotalPrice is the amount the schedule amortizes: TCP plus interest.
func (c *Contract) TotalPrice() float64 {
	return c.TCP + c.InterestTotal
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Contract{})
}
