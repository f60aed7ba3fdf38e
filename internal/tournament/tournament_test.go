package tournament

import (
	"testing"

	"trackday-server/internal/core"
	"trackday-server/internal/models"
)

func validAttributes() [models.AttributeCount]uint32 {
	var attrs [models.AttributeCount]uint32
	attrs[0] = 1
	attrs[2] = 3
	attrs[3] = 4
	attrs[4] = 1
	attrs[5] = 2
	attrs[6] = 1
	attrs[7] = 2
	attrs[8] = 5
	attrs[9] = 2
	attrs[10] = 1
	attrs[11] = 3
	attrs[12] = 1
	attrs[13] = 2
	return attrs
}

func TestValidateAttributesAcceptsInRangeValues(t *testing.T) {
	if err := validateAttributes(validAttributes()); err != nil {
		t.Fatalf("validateAttributes: %v", err)
	}
}

func TestValidateAttributesRejectsOutOfRangeSlot(t *testing.T) {
	attrs := validAttributes()
	attrs[0] = 9 // slot 0 must be 1 or 2
	err := validateAttributes(attrs)
	if !core.Is(err, core.KindInvalidArgument) {
		t.Fatalf("expected KindInvalidArgument, got %v", err)
	}
}

func TestValidateAttributesRejectsSlotOverCeiling(t *testing.T) {
	attrs := validAttributes()
	attrs[2] = 6 // slot 2 must be <= 5
	err := validateAttributes(attrs)
	if !core.Is(err, core.KindInvalidArgument) {
		t.Fatalf("expected KindInvalidArgument, got %v", err)
	}
}

func TestCommunityCodePatternAcceptsTwelveDigits(t *testing.T) {
	if !communityCodePattern.MatchString("012345678901") {
		t.Fatalf("expected a 12-digit code to match")
	}
}

func TestCommunityCodePatternRejectsWrongLength(t *testing.T) {
	if communityCodePattern.MatchString("12345") {
		t.Fatalf("expected a short code to be rejected")
	}
	if communityCodePattern.MatchString("1234567890123") {
		t.Fatalf("expected a too-long code to be rejected")
	}
}

func TestCompileBuildsAttributeFilters(t *testing.T) {
	param := SearchParam{
		Conditions: []Condition{
			{Slot: 3, Operator: OpEqual, Value: 7},
			{Slot: 5, Operator: OpGT, Value: 10},
			{Slot: 5, Operator: OpLT, Value: 20},
			{Slot: 6, Operator: OpIgnore, Value: 99},
		},
		ID:            5,
		Owner:         9,
		CommunityCode: "012345678901",
	}

	filter, err := compile(param)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if filter.AttributeEq[3] != 7 {
		t.Fatalf("AttributeEq[3] = %d, want 7", filter.AttributeEq[3])
	}
	if filter.AttributeGT[5] != 10 {
		t.Fatalf("AttributeGT[5] = %d, want 10", filter.AttributeGT[5])
	}
	if filter.AttributeLT[5] != 20 {
		t.Fatalf("AttributeLT[5] = %d, want 20", filter.AttributeLT[5])
	}
	if _, ok := filter.AttributeEq[6]; ok {
		t.Fatalf("slot 6 should have been ignored")
	}
	if filter.ID == nil || *filter.ID != 5 {
		t.Fatalf("ID filter not set correctly")
	}
	if filter.Owner == nil || *filter.Owner != 9 {
		t.Fatalf("Owner filter not set correctly")
	}
	if filter.CommunityCode == nil || *filter.CommunityCode != "012345678901" {
		t.Fatalf("CommunityCode filter not set correctly")
	}
}

func TestCompileRejectsUnknownOperator(t *testing.T) {
	param := SearchParam{Conditions: []Condition{{Slot: 1, Operator: 99, Value: 1}}}
	_, err := compile(param)
	if !core.Is(err, core.KindInvalidArgument) {
		t.Fatalf("expected KindInvalidArgument, got %v", err)
	}
}

func TestCompileLeavesZeroValuedFiltersUnset(t *testing.T) {
	filter, err := compile(SearchParam{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if filter.ID != nil || filter.Owner != nil || filter.CommunityCode != nil {
		t.Fatalf("expected zero-valued fields to leave filters unset, got %+v", filter)
	}
}
