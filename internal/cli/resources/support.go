package resources

import (
	"context"
	"fmt"
	"sort"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/directory"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/models"
)

type SupportCmd struct {
	Country   string `short:"c" help:"Country to list organizations for (e.g. india, global)."`
	Region    string `short:"r" help:"City or region within India."`
	Near      string `short:"n" help:"Place name to geocode and use as the country."`
	Countries bool   `help:"List the countries with organizations in the directory."`
}

func (c *SupportCmd) Run(ctx *cli.Context) error {
	if c.Countries {
		for _, name := range directory.Countries() {
			ctx.Println(name)
		}
		return nil
	}

	country := c.Country
	if c.Near != "" {
		loc, err := ctx.Integrations.Geocoder.Forward(context.Background(), c.Near)
		if err != nil {
			return fmt.Errorf("could not locate %q: %w", c.Near, err)
		}
		logger.Debug("Geocoded support location", "query", c.Near, "country", loc.Country, "city", loc.City)
		ctx.Printf("Showing support near %s\n\n", loc.Formatted)
		country = loc.Country
	}

	var orgs []models.Organization
	switch {
	case c.Region != "":
		orgs = directory.ByRegion(c.Region)
	case country != "":
		orgs = directory.ByCountry(country)
		if len(orgs) == 0 {
			ctx.Printf("No organizations listed for %s; showing global resources.\n\n", country)
			orgs = directory.ByCountry("global")
		}
	default:
		orgs = directory.All()
	}

	if len(orgs) == 0 {
		ctx.Println("No organizations found")
	}
	for _, o := range orgs {
		ctx.Printf("%s (%s, %s)\n", o.Name, o.Type, o.Country)
		ctx.Printf("  %s\n", o.Description)
		if o.Contact.Helpline != "" {
			ctx.Printf("  Helpline: %s\n", o.Contact.Helpline)
		}
		if o.Contact.Phone != "" {
			ctx.Printf("  Phone:    %s\n", o.Contact.Phone)
		}
		if o.Contact.Email != "" {
			ctx.Printf("  Email:    %s\n", o.Contact.Email)
		}
		ctx.Printf("  Website:  %s\n\n", o.Website)
	}

	emergencyFor := country
	if emergencyFor == "" {
		emergencyFor = "global"
	}
	nums := directory.Emergency(emergencyFor)
	services := make([]string, 0, len(nums))
	for k := range nums {
		services = append(services, k)
	}
	sort.Strings(services)
	ctx.Println("Emergency numbers:")
	for _, k := range services {
		ctx.Printf("  %-10s %s\n", k, nums[k])
	}
	return nil
}
