package taxonomy

import (
	"regexp"
	"strings"

	"profile-sync/internal/domain/skill"
)

type patternRule struct {
	re       *regexp.Regexp
	category skill.Category
}

func rule(expr string, category skill.Category) patternRule {
	return patternRule{re: regexp.MustCompile(`(?i)` + expr), category: category}
}

// patternRules maps well-known terms to categories. Checked in order, first
// match wins. Hand-curated on purpose: a false merge is worse than a false
// split for keyword fidelity, so the table stays small and auditable.
var patternRules = []patternRule{
	// Programming languages.
	rule(`^go(lang)?$`, skill.CategoryProgrammingLanguage),
	rule(`^(python|java|ruby|php|perl|scala|kotlin|swift|rust|elixir|haskell)$`, skill.CategoryProgrammingLanguage),
	rule(`^c(\+\+|#)?$`, skill.CategoryProgrammingLanguage),
	rule(`^(javascript|typescript|ecmascript)$`, skill.CategoryProgrammingLanguage),
	rule(`^(r|matlab|julia)$`, skill.CategoryDataScience),

	// Frontend.
	rule(`^react(\.js|js)?\b`, skill.CategoryFrontend),
	rule(`^(vue|angular|svelte|next\.?js|nuxt)\b`, skill.CategoryFrontend),
	rule(`^(html5?|css3?|sass|less|tailwind)`, skill.CategoryFrontend),

	// Backend and APIs.
	rule(`^(node(\.js|js)?|express|django|flask|rails|spring|laravel|fastapi|nestjs)\b`, skill.CategoryBackend),
	rule(`\b(rest|graphql|grpc)\b`, skill.CategoryBackend),
	rule(`\bmicroservices?\b`, skill.CategoryBackend),

	// Mobile.
	rule(`^(ios|android|flutter|react native|xamarin|swiftui)\b`, skill.CategoryMobile),

	// Databases.
	rule(`^(postgres(ql)?|mysql|mariadb|sqlite|oracle|sql server|mssql)$`, skill.CategoryDatabase),
	rule(`^(mongodb|redis|cassandra|dynamodb|elasticsearch|couchbase|neo4j)$`, skill.CategoryDatabase),
	rule(`^(sql|pl/?sql|t-sql)$`, skill.CategoryDatabase),

	// DevOps and cloud.
	rule(`^(docker|kubernetes|k8s|helm|terraform|ansible|puppet|chef|jenkins)\b`, skill.CategoryDevOps),
	rule(`\bci/?cd\b`, skill.CategoryDevOps),
	rule(`^(aws|amazon web services|azure|gcp|google cloud|cloudformation|lambda)\b`, skill.CategoryCloud),

	// Data and ML.
	rule(`\b(machine learning|deep learning|neural network|nlp|computer vision)\b`, skill.CategoryMachineLearning),
	rule(`^(tensorflow|pytorch|keras|scikit-?learn|xgboost)$`, skill.CategoryMachineLearning),
	rule(`\b(data (science|analysis|analytics|engineering)|etl|big data)\b`, skill.CategoryDataScience),
	rule(`^(pandas|numpy|spark|hadoop|airflow|tableau|power ?bi|looker)$`, skill.CategoryDataScience),

	// Security, networking, QA.
	rule(`\b(penetration test|pentest|infosec|siem|vulnerab|owasp|threat)`, skill.CategoryCybersecurity),
	rule(`^(tcp/ip|dns|vpn|firewall|cisco|ccna|ccnp)\b`, skill.CategoryNetworking),
	rule(`\b(selenium|cypress|playwright|junit|pytest|test automation|unit test)`, skill.CategoryQATesting),
	rule(`\bqa\b`, skill.CategoryQATesting),

	// Games, embedded, blockchain.
	rule(`\b(unity|unreal|game ?dev)`, skill.CategoryGameDevelopment),
	rule(`\b(embedded|firmware|rtos|microcontroller|arduino|fpga)\b`, skill.CategoryEmbedded),
	rule(`\b(blockchain|solidity|smart contract|ethereum|web3)\b`, skill.CategoryBlockchain),

	// Design and creative tools.
	rule(`^(photoshop|illustrator|indesign|figma|sketch|canva|adobe)`, skill.CategoryGraphicDesign),
	rule(`\b(ux|ui design|user experience|wirefram|prototyp)`, skill.CategoryUXDesign),
	rule(`\b(premiere|after effects|final cut|video edit)`, skill.CategoryVideoProduction),
	rule(`\bphotograph`, skill.CategoryPhotography),
	rule(`\b(copywriting|technical writing|editing|proofreading)\b`, skill.CategoryWriting),
	rule(`\b(seo|sem|google analytics|content marketing|social media)\b`, skill.CategoryMarketing),

	// Business and management.
	rule(`\b(scrum|agile|kanban|jira|pmp|prince2|project management)\b`, skill.CategoryProjectManagement),
	rule(`\b(product (management|owner|roadmap))\b`, skill.CategoryProductManagement),
	rule(`\b(salesforce|crm|lead generation|account management|b2b sales)\b`, skill.CategorySales),
	rule(`\b(recruit|onboarding|talent acquisition|hris|payroll)\b`, skill.CategoryHumanResources),
	rule(`\b(business analysis|requirements gathering|stakeholder)\b`, skill.CategoryBusinessAnalysis),
	rule(`\b(supply chain|procurement|inventory|warehous|logistics)\b`, skill.CategoryLogistics),

	// Finance and legal.
	rule(`\b(bookkeeping|accounts (payable|receivable)|quickbooks|gaap|ifrs)\b`, skill.CategoryAccounting),
	rule(`\b(financial (modeling|analysis|reporting)|budgeting|forecasting)\b`, skill.CategoryFinance),
	rule(`\b(portfolio management|equit(y|ies)|derivatives|trading|hedge)\b`, skill.CategoryInvestment),
	rule(`\b(underwriting|actuar|claims)\b`, skill.CategoryInsurance),
	rule(`\b(litigation|paralegal|contract law|legal research|due diligence)\b`, skill.CategoryLegal),
	rule(`\b(regulatory|compliance|aml|kyc|gdpr|hipaa|sox)\b`, skill.CategoryCompliance),

	// Healthcare.
	rule(`\b(registered nurse|\brn\b|patient care|phlebotomy|triage)`, skill.CategoryNursing),
	rule(`\b(diagnos|surgery|surgical|physician|clinical medicine)`, skill.CategoryMedicine),
	rule(`\b(pharmac|medication|dispensing)\b`, skill.CategoryPharmacy),
	rule(`\b(counseling|psychotherapy|cbt|behavioral health)\b`, skill.CategoryMentalHealth),
	rule(`\b(epidemiolog|public health|health policy)\b`, skill.CategoryPublicHealth),
	rule(`\b(radiolog|sonograph|mri|ct scan|medical imaging|ekg|ecg)\b`, skill.CategoryMedicalTechnology),

	// Engineering and science.
	rule(`\b(cad|solidworks|autocad|hvac|thermodynamics)\b`, skill.CategoryMechanicalEngineering),
	rule(`\b(circuit|plc|scada|electrical wiring|power systems)\b`, skill.CategoryElectricalEngineering),
	rule(`\b(structural|surveying|civil 3d|geotechnical)\b`, skill.CategoryCivilEngineering),
	rule(`\b(lab(oratory)? techniques|pcr|chromatograph|spectroscopy|assay)\b`, skill.CategoryLaboratory),

	// Education, trades, service.
	rule(`\b(curriculum|lesson plan|classroom management|esl|tutoring)\b`, skill.CategoryTeaching),
	rule(`\b(carpentry|plumbing|welding|masonry|blueprint reading)\b`, skill.CategoryConstruction),
	rule(`\b(cnc|lean manufacturing|six sigma|assembly line|quality control)\b`, skill.CategoryManufacturing),
	rule(`\b(food (safety|prep)|culinary|baking|menu)\b`, skill.CategoryCulinary),
	rule(`\b(front desk|concierge|guest relations|hospitality)\b`, skill.CategoryHospitality),
	rule(`\b(merchandising|point of sale|pos systems)\b`, skill.CategoryRetail),
	rule(`\b(property management|leasing|real estate|appraisal)\b`, skill.CategoryRealEstate),
	rule(`^(spanish|french|german|mandarin|japanese|arabic|portuguese)$`, skill.CategoryLanguage),
	rule(`\b(microsoft office|excel|word|powerpoint|outlook|data entry)\b`, skill.CategoryAdministration),
}

type keywordBucket struct {
	category skill.Category
	keywords []string
}

// keywordBuckets is the fallback heuristic tier: coarse per-domain cues for
// strings the pattern table has never seen.
var keywordBuckets = []keywordBucket{
	{skill.CategoryNursing, []string{"patient", "clinical", "nursing", "care plan"}},
	{skill.CategoryFinance, []string{"financial", "finance", "investment", "trading", "banking"}},
	{skill.CategoryLegal, []string{"legal", "law", "court", "attorney"}},
	{skill.CategoryMarketing, []string{"marketing", "brand", "campaign", "advertising"}},
	{skill.CategorySales, []string{"sales", "selling", "prospecting"}},
	{skill.CategoryTeaching, []string{"teaching", "education", "instruction", "student"}},
	{skill.CategoryGraphicDesign, []string{"design", "creative", "visual"}},
	{skill.CategoryWriting, []string{"writing", "content", "editorial"}},
	{skill.CategoryDataScience, []string{"data", "analytics", "statistics"}},
	{skill.CategoryCybersecurity, []string{"security", "encryption"}},
	{skill.CategoryCloud, []string{"cloud"}},
	{skill.CategoryDevOps, []string{"deployment", "infrastructure", "automation"}},
	{skill.CategoryProjectManagement, []string{"management", "planning", "coordination"}},
	{skill.CategoryCustomerService, []string{"customer", "support", "service desk"}},
	{skill.CategoryConstruction, []string{"construction", "building"}},
	{skill.CategoryLogistics, []string{"shipping", "freight", "transport"}},
	{skill.CategoryBackend, []string{"server", "api", "backend"}},
	{skill.CategoryFrontend, []string{"frontend", "web design"}},
	{skill.CategoryResearch, []string{"research", "analysis"}},
}

// Classify assigns a category to a raw skill name: pattern table first, then
// keyword buckets, then CategoryOther.
func Classify(name string) skill.Category {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return skill.CategoryOther
	}

	for _, r := range patternRules {
		if r.re.MatchString(trimmed) {
			return r.category
		}
	}

	lower := strings.ToLower(trimmed)
	for _, b := range keywordBuckets {
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				return b.category
			}
		}
	}

	return skill.CategoryOther
}
