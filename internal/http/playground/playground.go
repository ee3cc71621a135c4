// Package playground serves the GraphiQL IDE and the raw schema.
package playground

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	apicontract "github.com/tuanvumaihuynh/crm-graphql/api-contract"
)

// SchemaPath is where the schema definition is served.
const SchemaPath = "/graphql/schema"

// Register serves GraphiQL on GET endpoint, sending queries to the same
// path.
func Register(r chi.Router, endpoint string) {
	page := []byte(getTemplate(endpoint))

	r.Get(endpoint, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(page)
	})

	schema := []byte(apicontract.GetSchema())
	r.Get(SchemaPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(schema)
	})
}

func getTemplate(endpoint string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>GraphiQL</title>
  <link rel="stylesheet" href="https://unpkg.com/graphiql@3.8.3/graphiql.min.css" />
</head>
<body style="margin: 0;">
<div id="graphiql" style="height: 100vh;"></div>
<script src="https://unpkg.com/react@18.3.1/umd/react.production.min.js" crossorigin></script>
<script src="https://unpkg.com/react-dom@18.3.1/umd/react-dom.production.min.js" crossorigin></script>
<script src="https://unpkg.com/graphiql@3.8.3/graphiql.min.js" crossorigin></script>
<script>
  const fetcher = GraphiQL.createFetcher({ url: '%s' });
  ReactDOM.createRoot(document.getElementById('graphiql')).render(
    React.createElement(GraphiQL, { fetcher, defaultQuery: '{ hello }' }),
  );
</script>
</body>
</html>
`, endpoint)
}
