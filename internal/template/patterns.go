package template

import (
	"regexp"
	"strconv"
)

const num = `(\d+(?:\.\d+)?)`

// templates is the priority-ordered archetype list. First match wins;
// ambiguous content always resolves to the earlier entry.
var templates = []*Template{
	{
		// 第一天賣出 a/b，第二天賣出剩下的 c/d（或「一半」），還剩 N 件，原有多少
		Kind:    FractionSequentialSale,
		re:      regexp.MustCompile(`第一天賣出\s*(\d+)/(\d+).*?第二天賣出.*?(?:(\d+)/(\d+)|一半).*?還剩\s*(\d+)`),
		arity:   5,
		extract: extractSequentialSale,
	},
	{
		// 賣出 a/b，還剩 N 件，原有多少
		Kind:  FractionSingleSale,
		re:    regexp.MustCompile(`賣出\s*(\d+)/(\d+).*?還剩\s*(\d+)\s*件.*?原有|原有.*?賣出\s*(\d+)/(\d+).*?剩\s*(\d+)`),
		arity: 3,
	},
	{
		// 甲 a 天完成，乙 b 天完成，合作幾天
		Kind:  WorkTogether,
		re:    regexp.MustCompile(`(\d+)\s*天.*?完成.*?(\d+)\s*天.*?完成.*?合[作做].*?[幾多少]\s*天`),
		arity: 2,
	},
	{
		// a 克鹽溶於 b 克水，濃度是多少
		Kind:  Concentration,
		re:    regexp.MustCompile(`(\d+)\s*克.*?鹽.*?(\d+)\s*克.*?水.*?濃度|鹽\s*(\d+).*?水\s*(\d+).*?濃度`),
		arity: 2,
	},
	{
		// 同向而行，時速 a、時速 b，t 小時後相距多少
		Kind:  SameDirectionChase,
		re:    regexp.MustCompile(`同.*?向.*?時速\s*(\d+).*?時速\s*(\d+).*?(\d+)\s*小時.*?相距|時速\s*(\d+).*?時速\s*(\d+).*?同.*?向.*?(\d+)\s*小時.*?相距`),
		arity: 3,
	},
	{
		// 相向（反向）而行，時速 a、時速 b，t 小時後相距多少
		Kind:  OppositeDirectionMeet,
		re:    regexp.MustCompile(`相向.*?時速\s*(\d+).*?時速\s*(\d+).*?(\d+)\s*小時.*?相距|反向.*?時速\s*(\d+).*?時速\s*(\d+).*?(\d+)\s*小時`),
		arity: 3,
	},
	{
		Kind:    RectangleArea,
		re:      regexp.MustCompile(`長\s*` + num + `.*?寬\s*` + num + `.*?面積`),
		exclude: []string{"長方體", "切", "對摺"},
		arity:   2,
	},
	{
		Kind:    RectanglePerimeter,
		re:      regexp.MustCompile(`長\s*` + num + `.*?寬\s*` + num + `.*?周長`),
		exclude: []string{"長方體"},
		arity:   2,
	},
	{
		Kind:    TriangleArea,
		re:      regexp.MustCompile(`底\s*(?:為|是)?\s*` + num + `.*?高\s*(?:為|是)?\s*` + num),
		require: []string{"三角形"},
		arity:   2,
	},
	{
		// 半徑（或直徑）r 的圓，面積是多少（π = 3.14）
		Kind:    CircleArea,
		re:      regexp.MustCompile(`半徑\s*(?:為|是)?\s*` + num + `.*?面積|直徑\s*(?:為|是)?\s*` + num + `.*?面積`),
		require: []string{"圓"},
		exclude: []string{"圓柱", "扇形", "陰影"},
		arity:   1,
		extract: extractRadius,
	},
	{
		Kind:    CircleCircumference,
		re:      regexp.MustCompile(`半徑\s*(?:為|是)?\s*` + num + `.*?周長|直徑\s*(?:為|是)?\s*` + num + `.*?周長`),
		require: []string{"圓"},
		exclude: []string{"圓柱"},
		arity:   1,
		extract: extractRadius,
	},
	{
		// X 的 Y% 是多少
		Kind:  PercentageOf,
		re:    regexp.MustCompile(num + `\s*的\s*` + num + `\s*%\s*是`),
		arity: 2,
	},
	{
		// a:b = c:?，求 ?
		Kind:  RatioSimple,
		re:    regexp.MustCompile(`(\d+)\s*[：:]\s*(\d+)\s*[=＝]\s*(\d+)\s*[：:]\s*[?？Xx]`),
		arity: 3,
	},
	{
		// 買 n 個，每個 p 元，共多少元
		Kind:  SimpleMultiply,
		re:    regexp.MustCompile(`(\d+)\s*[個顆件本枝].*?每[個顆件本枝]?\s*(\d+)\s*元.*?[共總].*?多少|每[個顆件本枝]?\s*(\d+)\s*元.*?買\s*(\d+)\s*[個顆件本枝]`),
		arity: 2,
	},
	{
		// 平均：列舉 3-5 個數值
		Kind:  Average,
		re:    regexp.MustCompile(`平均.*?` + num + `[,、，]` + num + `[,、，]` + num + `(?:[,、，]` + num + `)?(?:[,、，]` + num + `)?`),
		arity: 3,
	},
}

// extractSequentialSale normalizes the two-day sale captures to
// [a1, b1, a2, b2, remainder]. The 「一半」 branch leaves groups 3 and 4
// empty and means 1/2.
func extractSequentialSale(groups []string) ([]float64, bool) {
	a1, ok1 := parseNum(groups[1])
	b1, ok2 := parseNum(groups[2])
	remain, ok3 := parseNum(groups[5])
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}
	a2, b2 := 1.0, 2.0
	if groups[3] != "" {
		var ok4, ok5 bool
		a2, ok4 = parseNum(groups[3])
		b2, ok5 = parseNum(groups[4])
		if !ok4 || !ok5 {
			return nil, false
		}
	}
	return []float64{a1, b1, a2, b2, remain}, true
}

// extractRadius normalizes circle captures to [radius]: group 1 is a
// 半徑 capture, group 2 a 直徑 capture.
func extractRadius(groups []string) ([]float64, bool) {
	if groups[1] != "" {
		r, ok := parseNum(groups[1])
		return []float64{r}, ok
	}
	if groups[2] != "" {
		d, ok := parseNum(groups[2])
		return []float64{d / 2}, ok
	}
	return nil, false
}

func parseNum(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
