// Package targets generates the URL list scraped for each site.
//
// Every site has a built-in URL template, parameter set and stall:
//
//	nhl        draft search pages, rounds 2-7, stall 20s
//	espn       team schedule pages, 31 teams x 2003-2019 x season types 1-3, stall 15s
//	hockeyref  league pages 1963-2019, stall 15s
//
// Any of these can be narrowed or replaced through config.SiteConfig.
package targets
