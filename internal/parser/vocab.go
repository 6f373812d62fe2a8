package parser

// Vocabulary 结构化抽取使用的规则词表
// 作为配置传入而非硬编码，便于替换词表而不改动解析算法
type Vocabulary struct {
	// Skills 技能词表，输出顺序跟随词表顺序
	Skills []string `yaml:"skills"`
	// SectionHeaders 章节头关键词 -> 章节名
	SectionHeaders []string `yaml:"section_headers"`
	// EducationKeywords 教育行关键词
	EducationKeywords []string `yaml:"education_keywords"`
	// ExperienceKeywords 经历行关键词
	ExperienceKeywords []string `yaml:"experience_keywords"`
}

// DefaultVocabulary 返回内置英文词表
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Skills: []string{
			"python", "java", "javascript", "c++", "sql", "html", "css",
			"react", "angular", "vue", "node", "django", "flask", "spring",
			"docker", "kubernetes", "aws", "azure", "gcp",
			"machine learning", "deep learning", "data analysis",
			"project management", "agile", "scrum", "git", "ci/cd",
			"devops", "api", "rest", "graphql", "mongodb", "postgresql",
			"mysql", "redis", "elasticsearch",
		},
		SectionHeaders: []string{
			"summary", "objective", "experience", "education", "skills",
			"projects", "achievements", "certifications", "awards",
			"publications",
		},
		EducationKeywords: []string{
			"bachelor", "master", "phd", "doctorate", "degree",
			"university", "college", "institute", "school",
			"certification", "certified",
		},
		ExperienceKeywords: []string{
			"experience", "worked", "working", "job", "position", "role",
			"company", "organization", "intern", "employee", "developer",
			"engineer", "manager", "analyst", "consultant", "specialist",
		},
	}
}

// merged 用覆盖词表填充缺省词表，空切片沿用默认值
func (v Vocabulary) merged() Vocabulary {
	def := DefaultVocabulary()
	if len(v.Skills) == 0 {
		v.Skills = def.Skills
	}
	if len(v.SectionHeaders) == 0 {
		v.SectionHeaders = def.SectionHeaders
	}
	if len(v.EducationKeywords) == 0 {
		v.EducationKeywords = def.EducationKeywords
	}
	if len(v.ExperienceKeywords) == 0 {
		v.ExperienceKeywords = def.ExperienceKeywords
	}
	return v
}
