// Package explain synthesizes explanation text for records that lack
// one. The deterministic category table is the only path the repairer
// uses; the LLM generator is an opt-in alternative for the explain
// command.
package explain

import (
	"fmt"
	"strings"

	"github.com/liyuwen/bankctl/internal/bank"
)

// Synthesize builds an explanation from the record's category and
// content keywords, interpolating the correct option. The table is
// total: an unmatched category falls back to a generic template.
func Synthesize(q bank.Question) string {
	ans := q.CorrectOption()
	content := q.Content
	category := q.Category

	switch {
	case category == "分數加減" || category == "分數計算":
		if strings.Contains(content, "+") {
			return fmt.Sprintf("先通分，找到公分母，再進行加法運算。答案是 %s", ans)
		}
		if strings.Contains(content, "-") {
			return fmt.Sprintf("先通分，找到公分母，再進行減法運算。答案是 %s", ans)
		}
	}

	switch {
	case category == "分數乘除" || strings.Contains(category, "分數"):
		if strings.Contains(content, "÷") || strings.Contains(content, "除") {
			return fmt.Sprintf("分數除法：除以一個分數等於乘以它的倒數。計算後約分得到答案 %s", ans)
		}
		if strings.Contains(content, "×") || strings.Contains(content, "乘") || strings.Contains(content, "的") {
			return fmt.Sprintf("分數乘法：分子乘分子，分母乘分母，最後約分。答案是 %s", ans)
		}
	}

	if category == "小數運算" || category == "小數綜合" {
		switch {
		case strings.Contains(content, "+"):
			return fmt.Sprintf("小數加法：對齊小數點，從右往左依次相加。答案是 %s", ans)
		case strings.Contains(content, "-"):
			return fmt.Sprintf("小數減法：對齊小數點，從右往左依次相減，不夠借位。答案是 %s", ans)
		case strings.Contains(content, "×"):
			return fmt.Sprintf("小數乘法：先按整數乘法計算，再數小數位數點小數點。答案是 %s", ans)
		case strings.Contains(content, "÷"):
			return fmt.Sprintf("小數除法：移動小數點使除數變成整數，被除數也移動相同位數。答案是 %s", ans)
		}
	}

	if category == "面積計算" || category == "面積綜合" {
		switch {
		case strings.Contains(content, "長方形"):
			return fmt.Sprintf("長方形面積 = 長 × 寬。代入數值計算得到答案 %s", ans)
		case strings.Contains(content, "正方形"):
			return fmt.Sprintf("正方形面積 = 邊長 × 邊長。代入數值計算得到答案 %s", ans)
		case strings.Contains(content, "三角形"):
			return fmt.Sprintf("三角形面積 = 底 × 高 ÷ 2。代入數值計算得到答案 %s", ans)
		case strings.Contains(content, "梯形"):
			return fmt.Sprintf("梯形面積 = (上底 + 下底) × 高 ÷ 2。代入數值計算得到答案 %s", ans)
		case strings.Contains(content, "平行四邊形"):
			return fmt.Sprintf("平行四邊形面積 = 底 × 高。代入數值計算得到答案 %s", ans)
		}
		return fmt.Sprintf("根據圖形面積公式計算，答案是 %s", ans)
	}

	if category == "周長計算" {
		switch {
		case strings.Contains(content, "長方形"):
			return fmt.Sprintf("長方形周長 = (長 + 寬) × 2。代入數值計算得到答案 %s", ans)
		case strings.Contains(content, "正方形"):
			return fmt.Sprintf("正方形周長 = 邊長 × 4。代入數值計算得到答案 %s", ans)
		}
		return fmt.Sprintf("周長是圖形所有邊的總長度。計算得到答案 %s", ans)
	}

	if category == "體積計算" || category == "體積綜合" || category == "圓柱體積" {
		switch {
		case strings.Contains(content, "長方體"):
			return fmt.Sprintf("長方體體積 = 長 × 寬 × 高。代入數值計算得到答案 %s", ans)
		case strings.Contains(content, "正方體"):
			return fmt.Sprintf("正方體體積 = 邊長 × 邊長 × 邊長。代入數值計算得到答案 %s", ans)
		case strings.Contains(content, "圓柱"):
			return fmt.Sprintf("圓柱體積 = π × 半徑² × 高。代入數值計算得到答案 %s", ans)
		}
		return fmt.Sprintf("根據體積公式計算，答案是 %s", ans)
	}

	if category == "圓的周長與面積" {
		if strings.Contains(content, "周長") || strings.Contains(content, "圓周") {
			return fmt.Sprintf("圓周長 = 2 × π × 半徑 = π × 直徑。代入數值計算得到答案 %s", ans)
		}
		if strings.Contains(content, "面積") {
			return fmt.Sprintf("圓面積 = π × 半徑²。代入數值計算得到答案 %s", ans)
		}
	}

	if category == "因數與倍數" || category == "質數與合數" {
		switch {
		case strings.Contains(content, "公因數"):
			return fmt.Sprintf("找出兩數的所有因數，取共同因數中最大的。答案是 %s", ans)
		case strings.Contains(content, "公倍數"):
			return fmt.Sprintf("找出兩數的倍數，取共同倍數中最小的。答案是 %s", ans)
		case strings.Contains(content, "質數"):
			return fmt.Sprintf("質數只有 1 和自己兩個因數。判斷後答案是 %s", ans)
		}
	}

	if fixed, ok := categoryTable(category, ans); ok {
		return fixed
	}

	if strings.Contains(category, "綜合") || strings.Contains(category, "混合") || strings.Contains(category, "應用") {
		return fmt.Sprintf("仔細分析題意，找出數量關係，列式計算。答案是 %s", ans)
	}

	return fmt.Sprintf("根據題意分析數量關係，列式計算得到答案 %s", ans)
}

// categoryTable covers the categories whose template does not depend on
// content keywords.
func categoryTable(category, ans string) (string, bool) {
	switch category {
	case "比與比值", "比與比值應用":
		return fmt.Sprintf("比的化簡：找最大公因數約分。比值 = 前項 ÷ 後項。答案是 %s", ans), true
	case "百分比基礎", "百分率應用":
		return fmt.Sprintf("百分比 = (部分 ÷ 整體) × 100%%。根據題意計算得到答案 %s", ans), true
	case "速率問題", "速率問題進階":
		return fmt.Sprintf("速率公式：速率 = 距離 ÷ 時間，距離 = 速率 × 時間，時間 = 距離 ÷ 速率。計算得到答案 %s", ans), true
	case "時間計算":
		return fmt.Sprintf("注意時間單位換算：1小時 = 60分鐘，1分鐘 = 60秒。計算得到答案 %s", ans), true
	case "和差問題":
		return fmt.Sprintf("和差問題公式：大數 = (和 + 差) ÷ 2，小數 = (和 - 差) ÷ 2。計算得到答案 %s", ans), true
	case "倍數問題":
		return fmt.Sprintf("設未知數列方程式，根據倍數關係求解。答案是 %s", ans), true
	case "年齡問題", "年齡問題進階":
		return fmt.Sprintf("年齡問題關鍵：年齡差不變。設未知數，列方程式求解。答案是 %s", ans), true
	case "工作問題", "工程問題進階":
		return fmt.Sprintf("工作問題：設工作總量為 1，工作效率 = 1 ÷ 完成時間。合作時效率相加。答案是 %s", ans), true
	case "濃度問題":
		return fmt.Sprintf("濃度 = 溶質 ÷ 溶液 × 100%%。根據題意列式計算得到答案 %s", ans), true
	case "利潤問題":
		return fmt.Sprintf("利潤 = 售價 - 成本，利潤率 = 利潤 ÷ 成本 × 100%%。計算得到答案 %s", ans), true
	case "雞兔問題":
		return fmt.Sprintf("雞兔問題：假設全是雞（或兔），算出腳數差，再根據腳數差求出兔（或雞）的數量。答案是 %s", ans), true
	case "植樹問題":
		return fmt.Sprintf("植樹問題：兩端都種棵數 = 間隔數 + 1；一端種棵數 = 間隔數；兩端不種棵數 = 間隔數 - 1。答案是 %s", ans), true
	case "等差數列":
		return fmt.Sprintf("等差數列：第 n 項 = 首項 + (n-1) × 公差；項數 = (末項 - 首項) ÷ 公差 + 1；總和 = (首項 + 末項) × 項數 ÷ 2。答案是 %s", ans), true
	case "規律問題":
		return fmt.Sprintf("找出數列或圖形的規律，根據規律推算答案。答案是 %s", ans), true
	case "邏輯推理":
		return fmt.Sprintf("根據題目條件，運用邏輯推理，排除錯誤選項。答案是 %s", ans), true
	case "統計圖表", "統計與圖表":
		return fmt.Sprintf("仔細閱讀圖表數據，根據題意進行計算或比較。答案是 %s", ans), true
	case "正負數運算":
		return fmt.Sprintf("正負數運算規則：同號相加取同號，異號相加取絕對值大的符號。答案是 %s", ans), true
	case "一元一次方程式", "方程式應用":
		return fmt.Sprintf("設未知數為 x，根據題意列方程式，移項求解。答案是 %s", ans), true
	case "幾何綜合":
		return fmt.Sprintf("運用幾何公式和性質，分步計算求解。答案是 %s", ans), true
	case "購物應用":
		return fmt.Sprintf("根據單價和數量的關係：總價 = 單價 × 數量。計算得到答案 %s", ans), true
	}
	return "", false
}
