package insights

import "finanzas/internal/core"

// Config is the tuning table of the rule set: every numeric trigger
// threshold and every score weight. Shares are fractions of 1, ratios
// and rates are percentages where noted.
type Config struct {
	// Timing and patterns.
	ProjectionScore    int
	WeekendShare       float64 // weekend spend / total spend
	WeekendScore       int
	MondayShare        float64
	MondayScore        int
	FirstWeekShare     float64
	FirstWeekScore     int
	SurvivalFromDay    int     // fires strictly after this day
	SurvivalSpendRatio float64 // spent / income
	SurvivalScore      int
	NightMinPurchases  int // fires strictly above
	NightScore         int
	ZeroSpendMinDays   int
	ZeroSpendScore     int
	DailyCostScore     int
	PaydayShare        float64
	PaydayScore        int
	FridayShare        float64
	FridayScore        int

	// Categories.
	OtherShare             float64
	OtherScore             int
	WantsScore             int
	SubscriptionMinCharges int
	SubscriptionScore      int
	FoodBaseline           core.Money
	FoodMultiplier         float64
	FoodScore              int
	GiftsThreshold         core.Money
	GiftsScore             int
	MinActiveCategories    int
	MonoSpendFloor         core.Money
	MonoScore              int
	CoffeeMaxAmount        core.Money
	CoffeeMinCount         int
	CoffeeScore            int
	StreamingMinServices   int
	StreamingScore         int
	GamingThreshold        core.Money
	GamingScore            int
	FashionThreshold       core.Money
	FashionScore           int
	FastFoodMinOrders      int
	FastFoodScore          int
	TransportThreshold     core.Money
	TransportScore         int

	// Financial health and ratios.
	SavingsRateTarget   float64 // percent
	SavingsHitScore     int
	SavingsMissScore    int
	RunwayDanger        float64 // months
	RunwayThin          float64
	RunwayFortress      float64
	RunwayDangerScore   int
	RunwayThinScore     int
	RunwayFortressScore int
	AccelFromDay        int
	AccelFactor         float64 // second-half avg vs first-half avg
	AccelScore          int
	InvestCushionMin    core.Money
	InvestSurplusMin    core.Money
	InvestScore         int
	DaysBoughtScore     int
	HousingRatioMax     float64 // percent of income
	HousingScore        int
	SafeDailyScore      int

	// Anomalies.
	HugeExpenseMin   core.Money
	HugeExpenseScore int
	MicroMaxAmount   core.Money
	MicroMinCount    int
	MicroScore       int
	RoundMinAmount   core.Money
	RoundMinCount    int
	RoundScore       int
	DuplicateScore   int
	FeesScore        int
	RefundScore      int

	// Behavior and gamification.
	LevelScore          int
	CrystalBallScore    int
	TherapyShare        float64
	TherapyScore        int
	PocketGapScore      int
	BadDescriptionMin   int
	BadDescriptionScore int
	IncomeSourcesScore  int
	TaxScore            int
	HealthSpendScore    int
	NoHealthSpendFloor  core.Money
	NoHealthScore       int
	PetScore            int
	EducationScore      int

	// Statistics.
	VolatileFactor         float64 // std dev vs mean
	VolatileScore          int
	ConsistentFactor       float64
	ConsistentScore        int
	TrendFromDay           int
	TrendFactor            float64 // regression slope vs simple average
	TrendScore             int
	ParetoShare            float64
	ParetoMinCategories    int // fires strictly above
	ParetoScore            int
	WeekendMultiplierMin   float64
	WeekendMultiplierScore int
	ZeroDayProbMin         float64 // percent
	ZeroDayScore           int
	NeedsRatioMax          float64 // percent of income
	NeedsScore             int
	CompoundCushionMin     core.Money
	CompoundRate           float64 // annual
	CompoundYears          int
	CompoundScore          int
	TicketHigh             core.Money
	TicketLow              core.Money
	TicketScore            int
	EmergencyMaxDays       float64
	EmergencyScore         int
	DebtRatioMax           float64 // percent of income
	DebtScore              int
	HealthScoreWeight      int
	RunwayYearsMin         float64
	RunwayYearsScore       int
	InflationFactor        float64 // spent vs budget
	InflationScore         int
	AntMaxAmount           core.Money
	AntShare               float64
	AntScore               int
	SaveSpeedScore         int
	BleedScore             int
}

func cents(c int64) core.Money { return core.Money{Cents: c} }

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		ProjectionScore:    10,
		WeekendShare:       0.5,
		WeekendScore:       5,
		MondayShare:        0.25,
		MondayScore:        3,
		FirstWeekShare:     0.6,
		FirstWeekScore:     8,
		SurvivalFromDay:    20,
		SurvivalSpendRatio: 0.9,
		SurvivalScore:      9,
		NightMinPurchases:  2,
		NightScore:         4,
		ZeroSpendMinDays:   5,
		ZeroSpendScore:     6,
		DailyCostScore:     2,
		PaydayShare:        0.15,
		PaydayScore:        6,
		FridayShare:        0.2,
		FridayScore:        3,

		OtherShare:             0.3,
		OtherScore:             7,
		WantsScore:             6,
		SubscriptionMinCharges: 4,
		SubscriptionScore:      5,
		FoodBaseline:           cents(15000),
		FoodMultiplier:         1.5,
		FoodScore:              4,
		GiftsThreshold:         cents(10000),
		GiftsScore:             3,
		MinActiveCategories:    3,
		MonoSpendFloor:         cents(10000),
		MonoScore:              2,
		CoffeeMaxAmount:        cents(500),
		CoffeeMinCount:         10,
		CoffeeScore:            4,
		StreamingMinServices:   3,
		StreamingScore:         3,
		GamingThreshold:        cents(5000),
		GamingScore:            2,
		FashionThreshold:       cents(10000),
		FashionScore:           3,
		FastFoodMinOrders:      4,
		FastFoodScore:          5,
		TransportThreshold:     cents(15000),
		TransportScore:         4,

		SavingsRateTarget:   20,
		SavingsHitScore:     8,
		SavingsMissScore:    5,
		RunwayDanger:        1,
		RunwayThin:          3,
		RunwayFortress:      6,
		RunwayDangerScore:   10,
		RunwayThinScore:     7,
		RunwayFortressScore: 8,
		AccelFromDay:        10,
		AccelFactor:         1.5,
		AccelScore:          6,
		InvestCushionMin:    cents(1000000),
		InvestSurplusMin:    cents(50000),
		InvestScore:         7,
		DaysBoughtScore:     6,
		HousingRatioMax:     40,
		HousingScore:        6,
		SafeDailyScore:      8,

		HugeExpenseMin:   cents(30000),
		HugeExpenseScore: 4,
		MicroMaxAmount:   cents(200),
		MicroMinCount:    15,
		MicroScore:       3,
		RoundMinAmount:   cents(1000),
		RoundMinCount:    5,
		RoundScore:       2,
		DuplicateScore:   5,
		FeesScore:        4,
		RefundScore:      3,

		LevelScore:          1,
		CrystalBallScore:    2,
		TherapyShare:        0.2,
		TherapyScore:        4,
		PocketGapScore:      9,
		BadDescriptionMin:   5,
		BadDescriptionScore: 2,
		IncomeSourcesScore:  5,
		TaxScore:            3,
		HealthSpendScore:    4,
		NoHealthSpendFloor:  cents(50000),
		NoHealthScore:       2,
		PetScore:            3,
		EducationScore:      6,

		VolatileFactor:         1.5,
		VolatileScore:          5,
		ConsistentFactor:       0.5,
		ConsistentScore:        4,
		TrendFromDay:           5,
		TrendFactor:            1.2,
		TrendScore:             6,
		ParetoShare:            0.8,
		ParetoMinCategories:    4,
		ParetoScore:            5,
		WeekendMultiplierMin:   2.5,
		WeekendMultiplierScore: 4,
		ZeroDayProbMin:         40,
		ZeroDayScore:           5,
		NeedsRatioMax:          50,
		NeedsScore:             7,
		CompoundCushionMin:     cents(100000),
		CompoundRate:           0.05,
		CompoundYears:          10,
		CompoundScore:          6,
		TicketHigh:             cents(5000),
		TicketLow:              cents(1000),
		TicketScore:            3,
		EmergencyMaxDays:       30,
		EmergencyScore:         9,
		DebtRatioMax:           30,
		DebtScore:              8,
		HealthScoreWeight:      7,
		RunwayYearsMin:         1,
		RunwayYearsScore:       8,
		InflationFactor:        1.2,
		InflationScore:         6,
		AntMaxAmount:           cents(500),
		AntShare:               0.1,
		AntScore:               4,
		SaveSpeedScore:         5,
		BleedScore:             6,
	}
}
