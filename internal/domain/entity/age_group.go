// Package entity 定义领域实体
package entity

// AgeGroup 训练组别枚举
// 分类器只能输出下面 17 个具体组别；存储层的过滤条件里
// 还可能出现合并年龄段（如 "6-7 AÑOS"），两者共用同一类型。
type AgeGroup string

// 分类器可输出的组别
const (
	AgeGroup6  AgeGroup = "6 AÑOS"
	AgeGroup7  AgeGroup = "7 AÑOS"
	AgeGroup8  AgeGroup = "8 AÑOS"
	AgeGroup9  AgeGroup = "9 AÑOS"
	AgeGroup10 AgeGroup = "10 AÑOS"
	AgeGroup11 AgeGroup = "11 AÑOS"
	AgeGroup12 AgeGroup = "12 AÑOS"
	AgeGroup13 AgeGroup = "13 AÑOS"
	AgeGroup16 AgeGroup = "16 AÑOS"

	AgeGroupHighPerformanceJunior AgeGroup = "ALTO RENDIMIENTO JUVENIL"

	AgeGroupAdultBeginner    AgeGroup = "ADULTOS INICIACION"
	AgeGroupAdultImprovement AgeGroup = "ADULTOS PERFECCIONAMIENTO"
	AgeGroupAdultTechnical   AgeGroup = "ADULTOS TECNIFICACIÓN"
	AgeGroupAdultCompetition AgeGroup = "ADULTOS COMPETICIÓN"

	AgeGroupProClay   AgeGroup = "ATP_WTA_Tierra"
	AgeGroupProHard   AgeGroup = "ATP_WTA_Rapida"
	AgeGroupProIndoor AgeGroup = "ATP_WTA_Indoor"
)

// 存储层的合并年龄段
const (
	AgeBand6to7   AgeGroup = "6-7 AÑOS"
	AgeBand8to9   AgeGroup = "8-9 AÑOS"
	AgeBand10to11 AgeGroup = "10-11 AÑOS"
	AgeBand12to13 AgeGroup = "12-13 AÑOS"
)

// classifierGroups 分类器输出的合法集合
var classifierGroups = map[AgeGroup]struct{}{
	AgeGroup6:                     {},
	AgeGroup7:                     {},
	AgeGroup8:                     {},
	AgeGroup9:                     {},
	AgeGroup10:                    {},
	AgeGroup11:                    {},
	AgeGroup12:                    {},
	AgeGroup13:                    {},
	AgeGroup16:                    {},
	AgeGroupHighPerformanceJunior: {},
	AgeGroupAdultBeginner:         {},
	AgeGroupAdultImprovement:      {},
	AgeGroupAdultTechnical:        {},
	AgeGroupAdultCompetition:      {},
	AgeGroupProClay:               {},
	AgeGroupProHard:               {},
	AgeGroupProIndoor:             {},
}

// mergedBands 单年龄组别到合并年龄段的映射
var mergedBands = map[AgeGroup]AgeGroup{
	AgeGroup6:  AgeBand6to7,
	AgeGroup7:  AgeBand6to7,
	AgeGroup8:  AgeBand8to9,
	AgeGroup9:  AgeBand8to9,
	AgeGroup10: AgeBand10to11,
	AgeGroup11: AgeBand10to11,
	AgeGroup12: AgeBand12to13,
	AgeGroup13: AgeBand12to13,
}

// Valid 判断是否为分类器可输出的组别
func (g AgeGroup) Valid() bool {
	_, ok := classifierGroups[g]
	return ok
}

// ValidForStorage 判断是否为可入库的组别标签。
// 教材页除了具体组别，还可能直接标注合并年龄段。
func (g AgeGroup) ValidForStorage() bool {
	if g.Valid() {
		return true
	}
	switch g {
	case AgeBand6to7, AgeBand8to9, AgeBand10to11, AgeBand12to13:
		return true
	}
	return false
}

// Expand 返回检索时应匹配的组别集合
// 单年龄组别附加其所属的合并年龄段；其余组别保持单元素集合。
func (g AgeGroup) Expand() []AgeGroup {
	if band, ok := mergedBands[g]; ok {
		return []AgeGroup{g, band}
	}
	return []AgeGroup{g}
}

// ForcesCoachPerspective 判断组别是否强制教练视角
// 16 AÑOS 与 ALTO RENDIMIENTO JUVENIL 的教材只按教练视角编写。
func (g AgeGroup) ForcesCoachPerspective() bool {
	return g == AgeGroup16 || g == AgeGroupHighPerformanceJunior
}

// ClassifierAgeGroups 返回分类器可输出的全部组别（提示词用）
func ClassifierAgeGroups() []AgeGroup {
	return []AgeGroup{
		AgeGroup6, AgeGroup7, AgeGroup8, AgeGroup9,
		AgeGroup10, AgeGroup11, AgeGroup12, AgeGroup13,
		AgeGroup16,
		AgeGroupHighPerformanceJunior,
		AgeGroupAdultBeginner, AgeGroupAdultImprovement,
		AgeGroupAdultTechnical, AgeGroupAdultCompetition,
		AgeGroupProClay, AgeGroupProHard, AgeGroupProIndoor,
	}
}
