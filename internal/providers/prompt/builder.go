package prompt

import (
	"fmt"
	"strings"

	"adcraft/internal/domain"
)

// Keys of the JSON object the model is asked to return.
const (
	KeyHeadline    = "ad_headline"
	KeyDescription = "ad_description"
	KeyHashtags    = "relevant_hashtags"
	KeyImagePrompt = "ad_image_prompt"
)

// BuildAdPrompt renders the system instruction for an ad request. Field values
// are interpolated verbatim.
func BuildAdPrompt(req domain.AdRequest) string {
	sb := &strings.Builder{}
	sb.WriteString("You are an experienced and expert digital marketing manager who is expert in crafting perfect relatable ads by linking the context of the product with human psychology. ")
	sb.WriteString("Now, generate and return the following in JSON format exactly following the schema provided below (ensure that the JSON keys match exactly and do not vary): ")
	fmt.Fprintf(sb, `{"%s": "relevant Catchy, engaging and short headline for the ad", `, KeyHeadline)
	fmt.Fprintf(sb, `"%s": "2-3 sentences highlighting the product", `, KeyDescription)
	fmt.Fprintf(sb, `"%s": "relevant hashtags for the ad followed by a comma like #cool, #new, #fun", `, KeyHashtags)
	fmt.Fprintf(sb, `"%s": "an ad image prompt, a complete, accurate, relevant and descriptive prompt to generate an image for this advertisement, based on provided details. Do not include any text or writing inside the image."}. `, KeyImagePrompt)
	fmt.Fprintf(sb, "For a company named %s, who has this %s and does %s in a %s tone and is targeting %s.",
		req.BrandName, req.CompanyType, req.Description, req.Tone, req.TargetAudience)
	return sb.String()
}
