// Package ftquery builds full-text search conditions and runs them against
// existing Redis query engine indexes.
//
// Conditions are trees of operators (AND, OR, NOT, IN, NOT IN) and
// field/value hashes. They compile to a textual query which the engine
// adapter translates into FT.SEARCH syntax.
//
// # Untyped rows
//
//	client, _ := ftquery.New(
//	    ftquery.WithRedis("localhost:6379", ""),
//	    ftquery.WithIndex("articles", "article:", map[string]ftquery.FieldType{
//	        "status": ftquery.FieldTag,
//	        "price":  ftquery.FieldNumeric,
//	    }),
//	)
//	rows, _ := client.Rows("articles").
//	    Where(ftquery.Hash(ftquery.Field("status", ftquery.Lit(1)))).
//	    OrderBy("price", ftquery.Desc).
//	    Limit(20).
//	    Rows(ctx)
//
// # Typed records from struct tags
//
//	type Article struct {
//	    ID     string  `ftquery:"id,id"`
//	    Title  string  `ftquery:"title,text"`
//	    Status int     `ftquery:"status,tag"`
//	    Price  float64 `ftquery:"price,numeric"`
//	}
//
//	client, _ := ftquery.New(
//	    ftquery.WithRedis("localhost:6379", ""),
//	    ftquery.WithStructIndex[Article]("articles", "article:"),
//	)
//	idx, _ := ftquery.NewIndex[Article](client, "articles")
//	list, _ := idx.Find().Where(ftquery.In("status", ftquery.Values(1, 2))).All(ctx)
package ftquery
