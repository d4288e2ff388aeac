package constvars

const (
	RegexFourDigitPIN      = `^\d{4}$`
	RegexElevenDigitPhone  = `^\d{11}$`
	RegexBloodPressurePair = `(\d+)\s*/\s*(\d+)`
	RegexContactSeparators = `[\s\-()+.]`
)
