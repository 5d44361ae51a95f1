// Package partpilot embeds the PartPilot parts search in a Go program,
// without the HTTP server.
//
// A Client owns one browsing session: the displayed search results, the
// cart and the offline state. Searches go to the lookup provider while
// online and fall back to the offline cache (case-insensitive, most recent
// queries only) while offline.
//
//	client, _ := partpilot.New(ctx,
//	    partpilot.WithSQLite("partpilot.db"),
//	    partpilot.WithOpenAI(os.Getenv("OPENAI_API_KEY"), "gpt-4o-mini"),
//	)
//	defer client.Close()
//
//	res, _ := client.Search(ctx, "front brake pads", &partpilot.Vehicle{
//	    Year: 2019, Make: "Ford", Model: "F-150",
//	})
//	client.Cart().AddAll(res.Results)
//	job, _ := client.Jobs().SaveCart(ctx, "Brake Job", "2019 Ford F-150")
//
// Offline mode is switched explicitly:
//
//	client.SetOffline(true)
//	res, err := client.Search(ctx, "Front Brake Pads", nil) // served from the cache
//	if errors.Is(err, partpilot.ErrOfflineNoCache) { ... }
package partpilot
