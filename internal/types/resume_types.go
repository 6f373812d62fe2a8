package types

// EntityCategory 命名实体类别
type EntityCategory = string

const (
	// EntityPersons 人名
	EntityPersons EntityCategory = "persons"
	// EntityOrganizations 组织机构
	EntityOrganizations EntityCategory = "organizations"
	// EntityLocations 地点
	EntityLocations EntityCategory = "locations"
	// EntityDates 日期
	EntityDates EntityCategory = "dates"
)

// ResumeFacts 从原始简历文本中抽取出的结构化事实
// 所有字段都是对 RawText 的只读派生视图，构造后不再修改
type ResumeFacts struct {
	// RawText 完整的简历原始文本（提取后不可变）
	RawText string `json:"raw_text"`

	// Emails 按出现顺序抽取的邮箱地址，不去重
	Emails []string `json:"emails"`
	// Phones 按出现顺序抽取的电话号码，不去重
	Phones []string `json:"phones"`
	// URLs 按出现顺序抽取的链接
	URLs []string `json:"urls"`

	// Skills 在固定技能词表中命中的技能，顺序跟随词表而非出现顺序
	Skills []string `json:"skills"`

	// EducationLines 命中教育关键词的文本行
	EducationLines []string `json:"education_lines"`
	// ExperienceLines 命中经历关键词的文本行，最多保留前10条
	ExperienceLines []string `json:"experience_lines"`

	// Entities 命名实体分桶：persons/organizations/locations/dates
	Entities map[EntityCategory][]string `json:"entities"`

	// Sections 章节名 -> 章节正文
	Sections map[string]string `json:"sections"`
}

// HasSection 判断简历中是否识别出了指定章节
func (f *ResumeFacts) HasSection(name string) bool {
	_, ok := f.Sections[name]
	return ok
}

// SectionNames 返回识别出的章节名列表（无固定顺序）
func (f *ResumeFacts) SectionNames() []string {
	names := make([]string, 0, len(f.Sections))
	for name := range f.Sections {
		names = append(names, name)
	}
	return names
}

// ScoreReport 一次简历-JD匹配分析的最终产物，构造后不可变
// 字段命名与导出报告的契约保持一致
type ScoreReport struct {
	// OverallScore 加权总分 (0-100)
	OverallScore float64 `json:"overall_score"`

	// 六个分项得分，均为 0-100
	KeywordMatchScore  float64 `json:"keyword_match_score"`
	SemanticSimilarity float64 `json:"semantic_similarity"`
	SkillsScore        float64 `json:"skills_score"`
	ExperienceScore    float64 `json:"experience_score"`
	EducationScore     float64 `json:"education_score"`
	FormatScore        float64 `json:"format_score"`

	// Issues 诊断出的问题列表
	Issues []string `json:"issues"`
	// Suggestions 改进建议列表
	Suggestions []string `json:"suggestions"`

	// MissingKeywords JD中高频但简历缺失的关键词，最多15个
	MissingKeywords []string `json:"missing_keywords"`
	// MatchedSkills 简历中命中的技能（与 ResumeFacts.Skills 相同）
	MatchedSkills []string `json:"matched_skills"`
	// MissingSkills JD要求但简历缺失的技能
	MissingSkills []string `json:"missing_skills"`

	// SectionsFound 简历中识别出的章节名
	SectionsFound []string `json:"sections_found"`
}

// SubScores 以类别名为键返回六个分项得分，供规则表和报告渲染遍历
func (r *ScoreReport) SubScores() map[string]float64 {
	return map[string]float64{
		"keyword":    r.KeywordMatchScore,
		"semantic":   r.SemanticSimilarity,
		"skills":     r.SkillsScore,
		"experience": r.ExperienceScore,
		"education":  r.EducationScore,
		"format":     r.FormatScore,
	}
}
