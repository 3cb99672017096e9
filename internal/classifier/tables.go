package classifier

// DefaultRules is evaluated top to bottom. Broad subject tags come first,
// then fine-grained concepts.
var DefaultRules = []Rule{
	{Keywords: []string{"気体", "理想気体", "実在気体", "状態方程式"}, Tag: "気体", Concept: "気体"},
	{Keywords: []string{"平衡", "ルシャトリエ", "Kc", "Ka", "Kb", "溶解度積"}, Tag: "平衡"},
	{Keywords: []string{"pH", "中和", "滴定", "緩衝", "酸塩基"}, Tag: "酸塩基"},
	{Keywords: []string{"電池", "電解", "電極", "起電力", "酸化数", "酸化還元"}, Tag: "電気化学"},
	{Keywords: []string{"有機", "ベンゼン", "芳香族", "アセチレン", "アルコール", "エステル", "ナフサ", "原油", "アクリル", "高分子", "ポリマー"}, Tag: "有機"},
	{Keywords: []string{"遷移元素", "周期表", "ハロゲン", "アンモニア", "ケイ素", "ヨウ素", "硫酸", "硝酸"}, Tag: "無機"},
	{Keywords: []string{"沈殿", "炎色", "呈色", "定性", "定量", "分析"}, Tag: "分析"},
	{Keywords: []string{"エンタルピー", "ヘス", "結合エネルギー", "反応熱", "燃焼熱"}, Tag: "熱化学"},
	{Keywords: []string{"反応速度", "触媒"}, Tag: "反応速度"},
	{Keywords: []string{"濃度", "モル", "mol", "g", "L", "計算", "ppm"}, Tag: "化学計算"},

	{Keywords: []string{"電池"}, Concept: "電池"},
	{Keywords: []string{"電解"}, Concept: "電解"},
	{Keywords: []string{"酸化還元", "酸化数"}, Concept: "酸化還元"},
	{Keywords: []string{"pH"}, Concept: "pH"},
	{Keywords: []string{"滴定"}, Concept: "滴定"},
	{Keywords: []string{"緩衝"}, Concept: "緩衝"},
	{Keywords: []string{"平衡"}, Concept: "化学平衡"},
	{Keywords: []string{"ルシャトリエ"}, Concept: "ルシャトリエの原理"},
	{Keywords: []string{"溶解度積"}, Concept: "溶解度積"},
	{Keywords: []string{"沈殿"}, Concept: "沈殿"},
	{Keywords: []string{"炎色"}, Concept: "炎色反応"},
	{Keywords: []string{"状態方程式"}, Concept: "気体の状態方程式"},
	{Keywords: []string{"実在気体"}, Concept: "実在気体"},
	{Keywords: []string{"反応速度", "速度"}, Concept: "反応速度"},
	{Keywords: []string{"触媒"}, Concept: "触媒"},
	{Keywords: []string{"有機"}, Concept: "有機化学"},
	{Keywords: []string{"ベンゼン", "芳香族"}, Concept: "芳香族"},
	{Keywords: []string{"ポリマー", "高分子"}, Concept: "高分子"},
	{Keywords: []string{"遷移元素"}, Concept: "遷移元素"},
	{Keywords: []string{"周期表"}, Concept: "周期表"},
	{Keywords: []string{"ハロゲン"}, Concept: "ハロゲン"},
	{Keywords: []string{"アンモニア"}, Concept: "アンモニア"},
	{Keywords: []string{"ヨウ素"}, Concept: "ヨウ素"},
	{Keywords: []string{"熱", "エンタルピー", "ヘス"}, Concept: "熱化学"},
}

// DefaultOverrides returns the curated classification of the 2025 exam
// chemistry questions, keyed by ordinal.
func DefaultOverrides() Overrides {
	return Overrides{
		1:  {Tags: []string{"物質の構造", "無機"}, Concepts: []string{"結晶の種類", "イオン結晶"}},
		2:  {Tags: []string{"気体", "物理化学"}, Concepts: []string{"理想気体", "実在気体"}},
		3:  {Tags: []string{"気体", "溶液", "平衡"}, Concepts: []string{"溶解平衡", "ヘンリーの法則", "炭酸水"}},
		4:  {Tags: []string{"コロイド"}, Concepts: []string{"コロイド", "分散系"}},
		5:  {Tags: []string{"溶液", "物理化学"}, Concepts: []string{"蒸気圧降下", "浸透圧", "沸点上昇"}},
		6:  {Tags: []string{"化学反応", "光化学"}, Concepts: []string{"化学発光", "蛍光・りん光"}},
		7:  {Tags: []string{"電気化学"}, Concepts: []string{"電池", "酸化還元", "ニッケル・カドミウム電池"}},
		8:  {Tags: []string{"酸塩基", "溶液"}, Concepts: []string{"弱酸電離", "pH", "希釈"}},
		9:  {Tags: []string{"化学平衡", "工業化学", "気体"}, Concepts: []string{"ハーバー・ボッシュ法", "化学平衡", "反応条件"}},
		10: {Tags: []string{"無機"}, Concepts: []string{"遷移元素", "錯体"}},
		11: {Tags: []string{"無機"}, Concepts: []string{"ケイ酸塩", "ガラス"}},
		12: {Tags: []string{"無機", "気体"}, Concepts: []string{"気体発生反応", "化学反応式"}},
		13: {Tags: []string{"無機", "分析"}, Concepts: []string{"ヨウ素", "酸化還元", "製造"}},
		14: {Tags: []string{"有機"}, Concepts: []string{"含酸素有機化合物", "反応"}},
		15: {Tags: []string{"有機"}, Concepts: []string{"アクリル酸", "アニリン", "付加反応"}},
		16: {Tags: []string{"有機", "天然物"}, Concepts: []string{"天然有機化合物", "構造"}},
		17: {Tags: []string{"有機"}, Concepts: []string{"アセチレン", "付加反応"}},
		18: {Tags: []string{"石油化学"}, Concepts: []string{"原油の分留", "留分"}},
		19: {Tags: []string{"石油化学", "有機"}, Concepts: []string{"ナフサ改質", "芳香族", "ベンゼン誘導体"}},
		20: {Tags: []string{"石油化学", "分析", "無機"}, Concepts: []string{"バナジウム", "錯体滴定", "酸化還元"}},
		21: {Tags: []string{"石油化学"}, Concepts: []string{"原油の分留", "留分"}},
		22: {Tags: []string{"石油化学", "有機"}, Concepts: []string{"ナフサ改質", "芳香族", "ベンゼン誘導体"}},
		23: {Tags: []string{"石油化学", "分析", "無機"}, Concepts: []string{"バナジウム", "錯体滴定", "酸化還元"}},
	}
}
