package models

// 奉献类型常量
const (
	OfferingOrdinary     = "Offrande ordinaire"
	OfferingWorship      = "Offrande d'adoration"
	OfferingThanksgiving = "Offrande d'action de grace"
	OfferingBuilding     = "Offrande de construction"
	OfferingTithe        = "Dime"
	OfferingTitheOfGifts = "Dime des offrandes"
)

// OtherExpenseType 支出专用的兜底类型
const OtherExpenseType = "Autre Dépense"

// GetOfferingTypes 获取默认奉献类型（有序）
func GetOfferingTypes() []string {
	return []string{
		OfferingOrdinary,
		OfferingWorship,
		OfferingThanksgiving,
		OfferingBuilding,
		OfferingTithe,
		OfferingTitheOfGifts,
	}
}
