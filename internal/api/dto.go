package api

import (
	"github.com/tripkitty/tripkitty/internal/models"
	"github.com/tripkitty/tripkitty/internal/service"
)

// Wire representations of the domain models. The models package carries no
// serialization concerns, so the JSON shape lives here.

type userDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

type memberDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toMemberDTO(m models.Member) memberDTO {
	return memberDTO{ID: m.ID, Name: m.Name, Email: m.Email, Role: string(m.Role)}
}

type tripDTO struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	Currency        string      `json:"currency"`
	CentralKeeperID string      `json:"central_keeper_id,omitempty"`
	Members         []memberDTO `json:"members"`
	CreatedBy       string      `json:"created_by"`
	CreatedAt       int64       `json:"created_at"`
}

func toTripDTO(t *models.Trip) tripDTO {
	members := make([]memberDTO, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, toMemberDTO(m))
	}
	return tripDTO{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		Currency:        t.Currency,
		CentralKeeperID: t.CentralKeeperID,
		Members:         members,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
	}
}

type shareDTO struct {
	MemberID string  `json:"member_id"`
	Amount   float64 `json:"amount"`
}

type expenseDTO struct {
	ID          string     `json:"id"`
	TripID      string     `json:"trip_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Amount      float64    `json:"amount"`
	PaidByID    string     `json:"paid_by_id"`
	SplitType   string     `json:"split_type"`
	Shares      []shareDTO `json:"shares"`
	CreatedAt   int64      `json:"created_at"`
}

func toExpenseDTO(e *models.Expense) expenseDTO {
	shares := make([]shareDTO, 0, len(e.Shares))
	for _, s := range e.Shares {
		shares = append(shares, shareDTO{MemberID: s.MemberID, Amount: s.Amount})
	}
	return expenseDTO{
		ID:          e.ID,
		TripID:      e.TripID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		PaidByID:    e.PaidByID,
		SplitType:   string(e.SplitType),
		Shares:      shares,
		CreatedAt:   e.CreatedAt,
	}
}

type paymentDTO struct {
	ID          string  `json:"id"`
	TripID      string  `json:"trip_id"`
	PayerID     string  `json:"payer_id"`
	ReceiverID  string  `json:"receiver_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	CreatedAt   int64   `json:"created_at"`
}

func toPaymentDTO(p *models.Payment) paymentDTO {
	return paymentDTO{
		ID:          p.ID,
		TripID:      p.TripID,
		PayerID:     p.PayerID,
		ReceiverID:  p.ReceiverID,
		Amount:      p.Amount,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func toAdhocPaymentDTO(p *models.AdhocPayment) paymentDTO {
	return paymentDTO{
		ID:          p.ID,
		TripID:      p.TripID,
		PayerID:     p.PayerID,
		ReceiverID:  p.ReceiverID,
		Amount:      p.Amount,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

type memberBalanceDTO struct {
	MemberID     string  `json:"member_id"`
	MemberName   string  `json:"member_name"`
	NetBalance   float64 `json:"net_balance"`
	OwedToViewer float64 `json:"owed_to_viewer"`
	ViewerOwes   float64 `json:"viewer_owes"`
}

type balanceSummaryDTO struct {
	Currency      string             `json:"currency"`
	ViewerBalance float64            `json:"viewer_balance"`
	NetBalances   map[string]float64 `json:"net_balances"`
	Members       []memberBalanceDTO `json:"members"`
	TotalExpenses float64            `json:"total_expenses"`
}

func toBalanceSummaryDTO(s *service.BalanceSummary) balanceSummaryDTO {
	members := make([]memberBalanceDTO, 0, len(s.Members))
	for _, m := range s.Members {
		members = append(members, memberBalanceDTO{
			MemberID:     m.MemberID,
			MemberName:   m.MemberName,
			NetBalance:   m.NetBalance,
			OwedToViewer: m.OwedToViewer,
			ViewerOwes:   m.ViewerOwes,
		})
	}
	return balanceSummaryDTO{
		Currency:      s.Currency,
		ViewerBalance: s.ViewerBalance,
		NetBalances:   s.NetBalances,
		Members:       members,
		TotalExpenses: s.TotalExpenses,
	}
}

type contributionDTO struct {
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	Total      float64 `json:"total"`
}

type keeperSummaryDTO struct {
	KeeperID      string            `json:"keeper_id"`
	KeeperName    string            `json:"keeper_name"`
	Currency      string            `json:"currency"`
	TotalReceived float64           `json:"total_received"`
	Contributions []contributionDTO `json:"contributions"`
}

func toKeeperSummaryDTO(s *service.KeeperSummary) keeperSummaryDTO {
	contributions := make([]contributionDTO, 0, len(s.Contributions))
	for _, c := range s.Contributions {
		contributions = append(contributions, contributionDTO{
			MemberID:   c.MemberID,
			MemberName: c.MemberName,
			Total:      c.Total,
		})
	}
	return keeperSummaryDTO{
		KeeperID:      s.KeeperID,
		KeeperName:    s.KeeperName,
		Currency:      s.Currency,
		TotalReceived: s.TotalReceived,
		Contributions: contributions,
	}
}
