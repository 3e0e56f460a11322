// Package searchgate embeds the searchgate insert/search gateway in a Go program,
// without the HTTP hop.
//
// The client bootstraps the engine exactly like the server does: it connects with
// bounded retries, ensures the index exists and seeds it when newly created.
//
//	client, err := searchgate.New(ctx,
//	    searchgate.WithRedis("localhost:6379", ""),
//	    searchgate.WithIndex("myindex"),
//	)
//	if err != nil { ... }
//	defer client.Close()
//
//	_, _ = client.Insert(ctx, "hello world")
//	hits, _ := client.Search(ctx, "hello")
//
// WithBleve runs an embedded engine instead, in memory or on disk.
package searchgate
