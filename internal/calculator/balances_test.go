package calculator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tripkitty/tripkitty/internal/models"
)

func tripMembers() []models.Member {
	return []models.Member{
		{ID: "a", Name: "Alice", Role: models.RoleAdmin},
		{ID: "b", Name: "Bob", Role: models.RoleMember},
		{ID: "c", Name: "Carol", Role: models.RoleMember},
	}
}

func equalExpense(id, payer string, amount float64, participants ...string) models.Expense {
	shares := make([]models.Share, len(participants))
	per := amount / float64(len(participants))
	for i, p := range participants {
		shares[i] = models.Share{MemberID: p, Amount: per}
	}
	return models.Expense{ID: id, Amount: amount, PaidByID: payer, SplitType: models.SplitEqual, Shares: shares}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestComputeNetBalances_EqualSplit(t *testing.T) {
	// 90.00 paid by Alice, split equally three ways.
	expenses := []models.Expense{equalExpense("e1", "a", 90, "a", "b", "c")}

	balances, err := ComputeNetBalances(tripMembers(), expenses, nil, nil)
	if err != nil {
		t.Fatalf("ComputeNetBalances() error = %v", err)
	}

	want := map[string]float64{"a": 60, "b": -30, "c": -30}
	for id, w := range want {
		if !approx(balances[id], w) {
			t.Errorf("balance[%s] = %v, want %v", id, balances[id], w)
		}
	}
}

func TestComputeNetBalances_Settlement(t *testing.T) {
	expenses := []models.Expense{equalExpense("e1", "a", 90, "a", "b", "c")}
	payments := []models.Payment{{ID: "p1", PayerID: "b", ReceiverID: "a", Amount: 30}}

	balances, err := ComputeNetBalances(tripMembers(), expenses, payments, nil)
	if err != nil {
		t.Fatalf("ComputeNetBalances() error = %v", err)
	}

	want := map[string]float64{"a": 30, "b": 0, "c": -30}
	for id, w := range want {
		if !approx(balances[id], w) {
			t.Errorf("balance[%s] = %v, want %v", id, balances[id], w)
		}
	}
}

func TestComputeNetBalances_EmptyLogs(t *testing.T) {
	balances, err := ComputeNetBalances(tripMembers(), nil, nil, nil)
	if err != nil {
		t.Fatalf("ComputeNetBalances() error = %v", err)
	}
	if len(balances) != 3 {
		t.Fatalf("expected all members present, got %d entries", len(balances))
	}
	for id, bal := range balances {
		if bal != 0 {
			t.Errorf("balance[%s] = %v, want 0", id, bal)
		}
	}
}

func TestComputeNetBalances_ZeroSum(t *testing.T) {
	expenses := []models.Expense{
		equalExpense("e1", "a", 90, "a", "b", "c"),
		equalExpense("e2", "b", 45.5, "b", "c"),
		{
			ID: "e3", Amount: 70, PaidByID: "c", SplitType: models.SplitExactAmounts,
			Shares: []models.Share{{MemberID: "a", Amount: 50}, {MemberID: "b", Amount: 20}},
		},
	}
	payments := []models.Payment{
		{ID: "p1", PayerID: "b", ReceiverID: "a", Amount: 12.34},
	}
	adhoc := []models.AdhocPayment{
		{ID: "ap1", PayerID: "c", ReceiverID: "a", Amount: 25},
	}

	balances, err := ComputeNetBalances(tripMembers(), expenses, payments, adhoc)
	if err != nil {
		t.Fatalf("ComputeNetBalances() error = %v", err)
	}

	sum := 0.0
	for _, bal := range balances {
		sum += bal
	}
	if math.Abs(sum) > 0.001 {
		t.Errorf("balances sum to %v, want 0", sum)
	}
}

func TestComputeNetBalances_OrderIndependence(t *testing.T) {
	expenses := []models.Expense{
		equalExpense("e1", "a", 90, "a", "b", "c"),
		equalExpense("e2", "b", 60, "a", "b"),
		equalExpense("e3", "c", 33, "a", "b", "c"),
	}
	payments := []models.Payment{
		{ID: "p1", PayerID: "b", ReceiverID: "a", Amount: 10},
		{ID: "p2", PayerID: "c", ReceiverID: "b", Amount: 5},
	}
	adhoc := []models.AdhocPayment{
		{ID: "ap1", PayerID: "b", ReceiverID: "a", Amount: 20},
		{ID: "ap2", PayerID: "c", ReceiverID: "a", Amount: 15},
	}

	want, err := ComputeNetBalances(tripMembers(), expenses, payments, adhoc)
	if err != nil {
		t.Fatalf("ComputeNetBalances() error = %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		se := append([]models.Expense(nil), expenses...)
		sp := append([]models.Payment(nil), payments...)
		sa := append([]models.AdhocPayment(nil), adhoc...)
		rng.Shuffle(len(se), func(i, j int) { se[i], se[j] = se[j], se[i] })
		rng.Shuffle(len(sp), func(i, j int) { sp[i], sp[j] = sp[j], sp[i] })
		rng.Shuffle(len(sa), func(i, j int) { sa[i], sa[j] = sa[j], sa[i] })

		got, err := ComputeNetBalances(tripMembers(), se, sp, sa)
		if err != nil {
			t.Fatalf("ComputeNetBalances() error = %v", err)
		}
		for id := range want {
			if !approx(got[id], want[id]) {
				t.Fatalf("permutation %d: balance[%s] = %v, want %v", i, id, got[id], want[id])
			}
		}
	}
}

func TestComputeNetBalances_Idempotent(t *testing.T) {
	expenses := []models.Expense{equalExpense("e1", "a", 90, "a", "b", "c")}
	payments := []models.Payment{{ID: "p1", PayerID: "b", ReceiverID: "a", Amount: 30}}

	first, err := ComputeNetBalances(tripMembers(), expenses, payments, nil)
	if err != nil {
		t.Fatalf("ComputeNetBalances() error = %v", err)
	}
	second, err := ComputeNetBalances(tripMembers(), expenses, payments, nil)
	if err != nil {
		t.Fatalf("ComputeNetBalances() error = %v", err)
	}

	for id := range first {
		if first[id] != second[id] {
			t.Errorf("balance[%s] changed between calls: %v then %v", id, first[id], second[id])
		}
	}
}

func TestComputeNetBalances_AdhocIsolation(t *testing.T) {
	// Bob pre-funds the keeper (Alice); Carol must be untouched.
	adhoc := []models.AdhocPayment{{ID: "ap1", PayerID: "b", ReceiverID: "a", Amount: 40}}

	balances, err := ComputeNetBalances(tripMembers(), nil, nil, adhoc)
	if err != nil {
		t.Fatalf("ComputeNetBalances() error = %v", err)
	}

	if !approx(balances["a"], 40) {
		t.Errorf("keeper balance = %v, want 40", balances["a"])
	}
	if !approx(balances["b"], -40) {
		t.Errorf("payer balance = %v, want -40", balances["b"])
	}
	if balances["c"] != 0 {
		t.Errorf("third member balance = %v, want 0", balances["c"])
	}
}

func TestComputeNetBalances_UnknownMember(t *testing.T) {
	tests := []struct {
		name     string
		expenses []models.Expense
		payments []models.Payment
		adhoc    []models.AdhocPayment
	}{
		{
			name:     "unknown expense payer",
			expenses: []models.Expense{equalExpense("e1", "ghost", 10, "a", "b")},
		},
		{
			name:     "unknown expense participant",
			expenses: []models.Expense{equalExpense("e1", "a", 10, "a", "ghost")},
		},
		{
			name:     "unknown payment receiver",
			payments: []models.Payment{{ID: "p1", PayerID: "a", ReceiverID: "ghost", Amount: 5}},
		},
		{
			name:  "unknown adhoc payer",
			adhoc: []models.AdhocPayment{{ID: "ap1", PayerID: "ghost", ReceiverID: "a", Amount: 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeNetBalances(tripMembers(), tt.expenses, tt.payments, tt.adhoc)
			if err == nil {
				t.Fatal("expected an error for unknown member reference, got nil")
			}
		})
	}
}

func TestPairwiseView(t *testing.T) {
	members := tripMembers()
	expenses := []models.Expense{equalExpense("e1", "a", 90, "a", "b", "c")}
	balances, err := ComputeNetBalances(members, expenses, nil, nil)
	if err != nil {
		t.Fatalf("ComputeNetBalances() error = %v", err)
	}

	// Bob's view: Alice is +60 vs Bob's -30, a +90 delta, reported as owed
	// to Bob under the two-party netting reading; Carol is even with Bob,
	// so settled.
	rows := PairwiseView(members, balances, "b")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if rows[0].MemberID != "a" {
		t.Errorf("rows[0] = %s, want creditor first", rows[0].MemberID)
	}
	if !approx(rows[0].OwedToViewer, 90) {
		t.Errorf("owed to viewer %v, want 90", rows[0].OwedToViewer)
	}
	if rows[0].ViewerOwes != 0 {
		t.Errorf("rows[0].ViewerOwes = %v, want 0", rows[0].ViewerOwes)
	}

	if rows[1].MemberID != "c" {
		t.Errorf("rows[1] = %s, want c", rows[1].MemberID)
	}
	if rows[1].OwedToViewer != 0 || rows[1].ViewerOwes != 0 {
		t.Errorf("equal balances should be settled, got owed=%v owes=%v",
			rows[1].OwedToViewer, rows[1].ViewerOwes)
	}
}

func TestPairwiseView_ViewerOwes(t *testing.T) {
	members := tripMembers()
	balances := map[string]float64{"a": 60, "b": -30, "c": -30}

	// Alice's view: each other member sits 90 below her, so she owes each
	// the differential.
	rows := PairwiseView(members, balances, "a")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, row := range rows {
		if !approx(row.ViewerOwes, 90) {
			t.Errorf("%s viewer-owes = %v, want 90", row.MemberID, row.ViewerOwes)
		}
		if row.OwedToViewer != 0 {
			t.Errorf("%s owed-to-viewer = %v, want 0", row.MemberID, row.OwedToViewer)
		}
	}
}

func TestPairwiseView_StableTieOrder(t *testing.T) {
	members := tripMembers()
	balances := map[string]float64{"a": 0, "b": 0, "c": 0}

	rows := PairwiseView(members, balances, "a")
	if rows[0].MemberID != "b" || rows[1].MemberID != "c" {
		t.Errorf("tie order = [%s %s], want member-list order [b c]",
			rows[0].MemberID, rows[1].MemberID)
	}
}

func TestComputeNetBalances_DoesNotMutateInputs(t *testing.T) {
	expenses := []models.Expense{equalExpense("e1", "a", 90, "a", "b", "c")}
	payments := []models.Payment{{ID: "p1", PayerID: "b", ReceiverID: "a", Amount: 30}}
	wantShare := expenses[0].Shares[0].Amount
	wantAmount := payments[0].Amount

	if _, err := ComputeNetBalances(tripMembers(), expenses, payments, nil); err != nil {
		t.Fatalf("ComputeNetBalances() error = %v", err)
	}

	if expenses[0].Shares[0].Amount != wantShare {
		t.Error("expense shares were mutated")
	}
	if payments[0].Amount != wantAmount {
		t.Error("payment amount was mutated")
	}
}

func TestKeeperContributions(t *testing.T) {
	trip := &models.Trip{
		CentralKeeperID: "a",
		Members:         tripMembers(),
	}
	adhoc := []models.AdhocPayment{
		{ID: "ap1", PayerID: "b", ReceiverID: "a", Amount: 10},
		{ID: "ap2", PayerID: "c", ReceiverID: "a", Amount: 25},
		{ID: "ap3", PayerID: "b", ReceiverID: "a", Amount: 5},
		// Not addressed to the keeper; must be ignored.
		{ID: "ap4", PayerID: "b", ReceiverID: "c", Amount: 99},
	}

	rows, received := KeeperContributions(trip, adhoc)
	if !approx(received, 40) {
		t.Errorf("total received = %v, want 40", received)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (keeper excluded)", len(rows))
	}
	if rows[0].MemberID != "c" || !approx(rows[0].Total, 25) {
		t.Errorf("rows[0] = %+v, want Carol with 25", rows[0])
	}
	if rows[1].MemberID != "b" || !approx(rows[1].Total, 15) {
		t.Errorf("rows[1] = %+v, want Bob with 15", rows[1])
	}
}

func TestKeeperContributions_NoKeeper(t *testing.T) {
	trip := &models.Trip{Members: tripMembers()}
	rows, received := KeeperContributions(trip, []models.AdhocPayment{
		{ID: "ap1", PayerID: "b", ReceiverID: "a", Amount: 10},
	})
	if rows != nil || received != 0 {
		t.Errorf("expected no rows without a keeper, got %v / %v", rows, received)
	}
}
