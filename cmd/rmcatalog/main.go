// Package main provides the entry point for the rmcatalog CLI.
//
// rmcatalog browses the Rick and Morty character catalog: it loads the
// first listing page, resolves each character's first episode, filters by
// life status and drills into locations to list their residents.
//
// Usage:
//
//	rmcatalog browse
//	rmcatalog browse --filter alive --location https://rickandmortyapi.com/api/location/3
//	rmcatalog shell
//
// See --help for all available options.
package main

func main() {
	Execute()
}
