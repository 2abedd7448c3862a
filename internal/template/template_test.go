package template

import "testing"

func mustFind(t *testing.T, content string) Match {
	t.Helper()
	m, ok := Find(content)
	if !ok {
		t.Fatalf("no template matched %q", content)
	}
	return m
}

func TestFind_FractionSequentialSale(t *testing.T) {
	m := mustFind(t, "某商店第一天賣出 2/5，第二天賣出剩下的 1/2，還剩 30 件，原有多少件？")
	if m.Kind != FractionSequentialSale {
		t.Fatalf("kind = %s", m.Kind)
	}
	want := []float64{2, 5, 1, 2, 30}
	for i, v := range want {
		if m.Params[i] != v {
			t.Errorf("params[%d] = %v, want %v", i, m.Params[i], v)
		}
	}
}

func TestFind_FractionSequentialSaleHalf(t *testing.T) {
	m := mustFind(t, "第一天賣出 1/4，第二天賣出剩下的一半，還剩 30 個，原來有多少個？")
	if m.Kind != FractionSequentialSale {
		t.Fatalf("kind = %s", m.Kind)
	}
	// 一半 normalizes to 1/2.
	if m.Params[2] != 1 || m.Params[3] != 2 {
		t.Errorf("half branch params = %v", m.Params)
	}
}

func TestFind_FractionSingleSale(t *testing.T) {
	m := mustFind(t, "書店賣出 2/5 後，還剩 30 件，問原有多少件？")
	if m.Kind != FractionSingleSale {
		t.Fatalf("kind = %s", m.Kind)
	}
	if len(m.Params) != 3 || m.Params[0] != 2 || m.Params[1] != 5 || m.Params[2] != 30 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_WorkTogether(t *testing.T) {
	m := mustFind(t, "一件工作，甲單獨做 4 天完成，乙單獨做 12 天完成，兩人合作需要幾天完成？")
	if m.Kind != WorkTogether {
		t.Fatalf("kind = %s", m.Kind)
	}
	if m.Params[0] != 4 || m.Params[1] != 12 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_Concentration(t *testing.T) {
	m := mustFind(t, "將 20 克鹽溶解在 80 克水中，鹽水的濃度是多少？")
	if m.Kind != Concentration {
		t.Fatalf("kind = %s", m.Kind)
	}
	if m.Params[0] != 20 || m.Params[1] != 80 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_SameDirectionChase(t *testing.T) {
	m := mustFind(t, "甲、乙兩車同向而行，甲車時速 60 公里，乙車時速 80 公里，3 小時後兩車相距多少公里？")
	if m.Kind != SameDirectionChase {
		t.Fatalf("kind = %s", m.Kind)
	}
	if m.Params[0] != 60 || m.Params[1] != 80 || m.Params[2] != 3 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_OppositeDirectionMeet(t *testing.T) {
	m := mustFind(t, "甲、乙兩車相向而行，甲車時速 40 公里，乙車時速 50 公里，2 小時後兩車共相距多少公里？")
	if m.Kind != OppositeDirectionMeet {
		t.Fatalf("kind = %s", m.Kind)
	}
	if m.Params[0] != 40 || m.Params[1] != 50 || m.Params[2] != 2 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_RectangleAreaAndPerimeter(t *testing.T) {
	m := mustFind(t, "一個長方形長 8 公分，寬 5 公分，面積是多少平方公分？")
	if m.Kind != RectangleArea {
		t.Fatalf("kind = %s", m.Kind)
	}
	if m.Params[0] != 8 || m.Params[1] != 5 {
		t.Errorf("params = %v", m.Params)
	}

	m = mustFind(t, "一個長方形長 8 公分，寬 5 公分，周長是多少公分？")
	if m.Kind != RectanglePerimeter {
		t.Fatalf("kind = %s", m.Kind)
	}
}

func TestFind_TriangleArea(t *testing.T) {
	m := mustFind(t, "一個三角形底為 10 公分，高為 6 公分，面積是多少平方公分？")
	if m.Kind != TriangleArea {
		t.Fatalf("kind = %s", m.Kind)
	}
	if m.Params[0] != 10 || m.Params[1] != 6 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_CircleAreaRadius(t *testing.T) {
	m := mustFind(t, "一個圓的半徑是 7 公分，它的面積是多少平方公分？")
	if m.Kind != CircleArea {
		t.Fatalf("kind = %s", m.Kind)
	}
	if len(m.Params) != 1 || m.Params[0] != 7 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_CircleAreaDiameter(t *testing.T) {
	m := mustFind(t, "一個圓的直徑是 10 公分，它的面積是多少平方公分？")
	if m.Kind != CircleArea {
		t.Fatalf("kind = %s", m.Kind)
	}
	// 直徑 halves to the radius.
	if len(m.Params) != 1 || m.Params[0] != 5 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_CircleCircumference(t *testing.T) {
	m := mustFind(t, "半徑是 5 公分的圓，周長是多少公分？")
	if m.Kind != CircleCircumference {
		t.Fatalf("kind = %s", m.Kind)
	}
	if m.Params[0] != 5 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_PercentageOf(t *testing.T) {
	m := mustFind(t, "200 的 15% 是多少？")
	if m.Kind != PercentageOf {
		t.Fatalf("kind = %s", m.Kind)
	}
	if m.Params[0] != 200 || m.Params[1] != 15 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_RatioSimple(t *testing.T) {
	m := mustFind(t, "3：4 = 6：?，? 是多少？")
	if m.Kind != RatioSimple {
		t.Fatalf("kind = %s", m.Kind)
	}
	if m.Params[0] != 3 || m.Params[1] != 4 || m.Params[2] != 6 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_SimpleMultiply(t *testing.T) {
	m := mustFind(t, "小明買了 5 個蘋果，每個 12 元，共花多少元？")
	if m.Kind != SimpleMultiply {
		t.Fatalf("kind = %s", m.Kind)
	}
	if m.Params[0] != 5 || m.Params[1] != 12 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_Average(t *testing.T) {
	m := mustFind(t, "五位學生的身高平均是多少？身高分別為 150、152、148、155、145 公分。")
	if m.Kind != Average {
		t.Fatalf("kind = %s", m.Kind)
	}
	if len(m.Params) != 5 {
		t.Errorf("params = %v", m.Params)
	}
}

func TestFind_NoMatch(t *testing.T) {
	for _, content := range []string{
		"",
		"下列哪個選項是質數？",
		"小華的爸爸比小華大 28 歲。",
	} {
		if m, ok := Find(content); ok {
			t.Errorf("%q unexpectedly matched %s", content, m.Kind)
		}
	}
}

func TestFind_ExcludeGuards(t *testing.T) {
	// 長方體 content must not resolve to the rectangle templates.
	content := "一個長方體長 8 公分，寬 5 公分，高 2 公分，表面積是多少？"
	if m, ok := Find(content); ok {
		t.Errorf("%q unexpectedly matched %s", content, m.Kind)
	}

	// 圓柱 content must not resolve to the circle templates.
	content = "一個圓柱的半徑是 5 公分，高 10 公分，它的底面積是多少？"
	if m, ok := Find(content); ok && (m.Kind == CircleArea || m.Kind == CircleCircumference) {
		t.Errorf("%q matched %s despite 圓柱 guard", content, m.Kind)
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	// Content carrying both 面積 and 周長 resolves to the earlier template.
	m := mustFind(t, "一個長方形長 8 公分，寬 5 公分，面積和周長各是多少？先求面積。")
	if m.Kind != RectangleArea {
		t.Fatalf("kind = %s, want %s", m.Kind, RectangleArea)
	}
}

func TestKinds_CoversAllTemplates(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 15 {
		t.Fatalf("len(kinds) = %d, want 15", len(kinds))
	}
	seen := make(map[Kind]bool)
	for _, k := range kinds {
		if seen[k] {
			t.Errorf("duplicate kind %s", k)
		}
		seen[k] = true
	}
}
