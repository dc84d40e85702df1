package domain

// CompanyType is what the advertised company offers.
type CompanyType string

const (
	CompanyTypeProduct CompanyType = "Product"
	CompanyTypeService CompanyType = "Service"
)

// Tone is the voice requested for the ad copy.
type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneCasual       Tone = "Casual"
	ToneEnthusiastic Tone = "Enthusiastic"
	ToneFriendly     Tone = "Friendly"
)

// CompanyTypes lists the options offered by the submission form.
var CompanyTypes = []CompanyType{CompanyTypeProduct, CompanyTypeService}

// Tones lists the options offered by the submission form.
var Tones = []Tone{ToneProfessional, ToneCasual, ToneEnthusiastic, ToneFriendly}

// AdRequest holds the advertisement parameters submitted through the form.
// Values are interpolated into the prompt verbatim.
type AdRequest struct {
	BrandName      string      `json:"brand_name"`
	CompanyType    CompanyType `json:"company_type"`
	Description    string      `json:"description"`
	TargetAudience string      `json:"target_audience"`
	Tone           Tone        `json:"tone"`
}

// AdResult is the assembled ad copy served to the browser.
type AdResult struct {
	AdHeadline       string `json:"ad_headline"`
	AdDescription    string `json:"ad_description"`
	RelevantHashtags string `json:"relevant_hashtags"`
	ImageURL         string `json:"image_url"`
}
