package model

import (
	"testing"
	"time"
)

func TestOrderNumber(t *testing.T) {
	order := &Order{
		ID:        7,
		CreatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	if got := order.OrderNumber(); got != "FC-20240007" {
		t.Errorf("OrderNumber() = %s, want FC-20240007", got)
	}

	order = &Order{
		ID:        12345,
		CreatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	if got := order.OrderNumber(); got != "FC-202612345" {
		t.Errorf("OrderNumber() = %s, want FC-202612345", got)
	}
}

func TestCanTransitionOrderStatus(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, c := range cases {
		if got := CanTransitionOrderStatus(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		if !IsValidOrderStatus(s) {
			t.Errorf("IsValidOrderStatus(%s) = false", s)
		}
	}
	if IsValidOrderStatus("refunded") {
		t.Error("IsValidOrderStatus(refunded) = true, want false")
	}
}

func TestOrderItemLineTotal(t *testing.T) {
	item := &OrderItem{Quantity: 3, PriceAmount: 4990}
	if got := item.LineTotal(); got != 14970 {
		t.Errorf("LineTotal() = %d, want 14970", got)
	}
	if got := item.GetPrice(); got != 49.90 {
		t.Errorf("GetPrice() = %v, want 49.90", got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Marie.Dupont@Example.COM "); got != "marie.dupont@example.com" {
		t.Errorf("NormalizeEmail() = %s", got)
	}
}

func TestDetectMediaType(t *testing.T) {
	cases := map[string]string{
		"lampe.jpg":  MediaTypeImage,
		"promo.MP4":  MediaTypeVideo,
		"notice.pdf": MediaTypeOther,
	}
	for filename, want := range cases {
		if got := DetectMediaType(filename); got != want {
			t.Errorf("DetectMediaType(%s) = %s, want %s", filename, got, want)
		}
	}
}

func TestGetThemeDecorationInfo(t *testing.T) {
	noel := GetThemeDecorationInfo(ThemeDecorationNoel)
	if !noel.ShowBanner || noel.Label != "Noël" {
		t.Errorf("noel info = %+v", noel)
	}

	// 未知主题回退到 none
	fallback := GetThemeDecorationInfo("carnaval")
	if fallback != GetThemeDecorationInfo(ThemeDecorationNone) {
		t.Errorf("unknown theme should fall back to none, got %+v", fallback)
	}
}

func TestVariationEffectivePrice(t *testing.T) {
	override := int64(5990)
	v := &ProductVariation{PriceAmount: &override}
	if got := v.EffectivePriceAmount(4990); got != 5990 {
		t.Errorf("EffectivePriceAmount = %d, want 5990", got)
	}

	v = &ProductVariation{}
	if got := v.EffectivePriceAmount(4990); got != 4990 {
		t.Errorf("EffectivePriceAmount = %d, want base 4990", got)
	}
}
