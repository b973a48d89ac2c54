// Package directory is the built-in list of mental-health support
// organizations and emergency numbers.
package directory

import (
	"sort"
	"strings"

	"github.com/julianstephens/mindfulpath/internal/models"
)

// EmergencyNumbers maps a service (police, ambulance, ...) to its number
type EmergencyNumbers map[string]string

var emergencyNumbers = map[string]EmergencyNumbers{
	"global": {
		"police":    "112",
		"ambulance": "112",
		"fire":      "112",
	},
	"usa": {
		"all": "911",
	},
	"india": {
		"police":        "100",
		"ambulance":     "108",
		"fire":          "101",
		"women":         "1091",
		"mental_health": "1800-599-0019",
	},
}

var globalOrganizations = []models.Organization{
	{
		Name:        "World Health Organization - Mental Health",
		Website:     "https://www.who.int/mental_health",
		Description: "Global mental health resources and guidance",
		Type:        models.OrgGlobal,
		Country:     "Global",
		Contact:     models.Contact{Email: "mnh@who.int", Phone: "+41 22 791 21 11", Helpline: "112"},
	},
	{
		Name:        "Mind",
		Website:     "https://www.mind.org.uk",
		Description: "Mental health support and advocacy",
		Type:        models.OrgInternational,
		Country:     "UK",
		Contact:     models.Contact{Email: "contact@mind.org.uk", Phone: "+44 300 123 3393", Helpline: "999"},
	},
	{
		Name:        "NAMI",
		Website:     "https://www.nami.org",
		Description: "Mental illness support and education",
		Type:        models.OrgInternational,
		Country:     "USA",
		Contact:     models.Contact{Email: "info@nami.org", Phone: "1-800-950-6264", Helpline: "911"},
	},
	{
		Name:        "Befrienders Worldwide",
		Website:     "https://www.befrienders.org",
		Description: "International suicide prevention network",
		Type:        models.OrgGlobal,
		Country:     "Global",
		Contact:     models.Contact{Email: "info@befrienders.org", Helpline: "112"},
	},
}

var indianOrganizations = []models.Organization{
	{
		Name:        "NIMHANS",
		Website:     "https://nimhans.ac.in",
		Description: "National Institute of Mental Health and Neurosciences - Premier mental health institution",
		Type:        models.OrgNational,
		Country:     "India",
		Location:    "Bangalore",
		Contact:     models.Contact{Email: "info@nimhans.ac.in", Phone: "080-26995001", Helpline: "080-46110007"},
	},
	{
		Name:        "Kiran Mental Health Helpline",
		Website:     "https://nimhans.ac.in",
		Description: "24/7 toll-free mental health rehabilitation helpline",
		Type:        models.OrgNational,
		Country:     "India",
		Contact:     models.Contact{Helpline: "1800-599-0019"},
	},
	{
		Name:        "DISHA",
		Website:     "https://www.spb.kerala.gov.in/disha",
		Description: "24/7 helpline for mental health support and counseling in Kerala",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Kerala",
		Contact:     models.Contact{Helpline: "1056", Phone: "0471-2552056"},
	},
	{
		Name:        "Institute of Mental Health and Neurosciences (IMHANS)",
		Website:     "https://imhans.org",
		Description: "Mental health care and rehabilitation services in Kerala",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Kozhikode",
		Contact:     models.Contact{Phone: "0495-2359352", Email: "imhans@kerala.gov.in"},
	},
	{
		Name:        "Thanal",
		Website:     "http://thanal.org",
		Description: "Suicide prevention and mental health support in Kerala",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Thiruvananthapuram",
		Contact:     models.Contact{Helpline: "0484-2361161"},
	},
	{
		Name:        "SNEHA",
		Website:     "https://snehaindia.org",
		Description: "Suicide prevention and emotional support helpline",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Chennai",
		Contact:     models.Contact{Helpline: "044-24640050", Email: "help@snehaindia.org"},
	},
	{
		Name:        "MS Chellamuthu Trust",
		Website:     "https://mschellamuthutrust.org",
		Description: "Mental health care and rehabilitation services",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Madurai",
		Contact:     models.Contact{Phone: "0452-2334343", Email: "info@mschellamuthutrust.org"},
	},
	{
		Name:        "Banyan",
		Website:     "https://thebanyan.org",
		Description: "Mental health care for homeless women",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Chennai",
		Contact:     models.Contact{Phone: "044-26530504", Email: "contact@thebanyan.org"},
	},
	{
		Name:        "Roshni",
		Website:     "http://www.roshnihelp.org",
		Description: "Suicide prevention and emotional support",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Hyderabad",
		Contact:     models.Contact{Helpline: "040-66202000", Email: "roshnihelp@gmail.com"},
	},
	{
		Name:        "Institute of Mental Health",
		Website:     "https://imh.telangana.gov.in",
		Description: "Government mental health institution",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Hyderabad",
		Contact:     models.Contact{Phone: "040-27661832", Helpline: "040-27661833"},
	},
	{
		Name:        "Pause for Perspective",
		Website:     "https://pauseforperspective.org",
		Description: "Mental health counseling and therapy services",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Hyderabad",
		Contact:     models.Contact{Phone: "040-40144288", Email: "contact@pauseforperspective.org"},
	},
	{
		Name:        "Sahai Helpline",
		Website:     "http://sahaihelpline.org",
		Description: "Suicide prevention and mental health support",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Bangalore",
		Contact:     models.Contact{Helpline: "080-25497777", Email: "sahaihelpline@gmail.com"},
	},
	{
		Name:        "Medico Pastoral Association",
		Website:     "https://mpabangalore.org",
		Description: "Mental health counseling and rehabilitation",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Bangalore",
		Contact:     models.Contact{Phone: "080-25530044", Email: "contact@mpabangalore.org"},
	},
	{
		Name:        "Spandana",
		Website:     "https://spandanabangalore.in",
		Description: "Psychiatric rehabilitation center",
		Type:        models.OrgRegional,
		Country:     "India",
		Location:    "Bangalore",
		Contact:     models.Contact{Phone: "080-23113886", Email: "spandana.rehab@gmail.com"},
	},
	{
		Name:        "Vandrevala Foundation",
		Website:     "https://www.vandrevalafoundation.com",
		Description: "24/7 mental health support and crisis intervention",
		Type:        models.OrgNational,
		Country:     "India",
		Contact:     models.Contact{Email: "help@vandrevalafoundation.com", Helpline: "1860-2662-345"},
	},
	{
		Name:        "AASRA",
		Website:     "http://www.aasra.info",
		Description: "24/7 helpline for emotional support and suicide prevention",
		Type:        models.OrgNational,
		Country:     "India",
		Location:    "Mumbai",
		Contact:     models.Contact{Email: "aasrahelpline@yahoo.com", Helpline: "91-9820466726"},
	},
}

func clone(orgs []models.Organization) []models.Organization {
	return append([]models.Organization(nil), orgs...)
}

// ByCountry returns organizations for a country. "india" selects the Indian
// directory and "global" the worldwide organizations; anything else matches
// the country field case-insensitively.
func ByCountry(country string) []models.Organization {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "india":
		return clone(indianOrganizations)
	case "global":
		return filter(globalOrganizations, func(o models.Organization) bool { return o.Type == models.OrgGlobal })
	}
	return filter(globalOrganizations, func(o models.Organization) bool { return strings.EqualFold(o.Country, strings.TrimSpace(country)) })
}

// ByRegion returns Indian organizations whose location matches region.
func ByRegion(region string) []models.Organization {
	return filter(indianOrganizations, func(o models.Organization) bool {
		return o.Location != "" && strings.EqualFold(o.Location, strings.TrimSpace(region))
	})
}

func All() []models.Organization {
	return append(clone(globalOrganizations), indianOrganizations...)
}

// Countries lists the distinct country values in the directory, sorted.
func Countries() []string {
	seen := make(map[string]struct{})
	for _, o := range All() {
		seen[o.Country] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Emergency returns the emergency numbers for a country, falling back to
// the international 112 set.
func Emergency(country string) EmergencyNumbers {
	key := strings.ToLower(strings.TrimSpace(country))
	switch key {
	case "united states", "united states of america", "us":
		key = "usa"
	}
	nums, ok := emergencyNumbers[key]
	if !ok {
		nums = emergencyNumbers["global"]
	}
	out := make(EmergencyNumbers, len(nums))
	for k, v := range nums {
		out[k] = v
	}
	return out
}

func filter(orgs []models.Organization, keep func(models.Organization) bool) []models.Organization {
	out := []models.Organization{}
	for _, o := range orgs {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
