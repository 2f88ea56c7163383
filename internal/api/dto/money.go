package dto

import "math"

// Prices are exchanged in reais and stored in centavos

// ToReais converts centavos to reais
func ToReais(cents int64) float64 {
	return float64(cents) / 100
}

// ToReaisPtr converts optional centavos to reais
func ToReaisPtr(cents *int64) *float64 {
	if cents == nil {
		return nil
	}
	v := ToReais(*cents)
	return &v
}

// ToCentsPtr converts optional reais to centavos, rounding to the nearest centavo
func ToCentsPtr(reais *float64) *int64 {
	if reais == nil {
		return nil
	}
	v := int64(math.Round(*reais * 100))
	return &v
}
