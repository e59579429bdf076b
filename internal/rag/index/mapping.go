// internal/rag/index/mapping.go
package index

// MappingVersion identifies the current index schema. Schema changes mean a
// new version constant plus an explicit recreate-and-backfill; the client
// never migrates mappings implicitly.
const MappingVersion = 1

// mappingV1 is the fixed index schema: k-NN enabled, a 768-dimension cosine
// HNSW vector, keyword attribute fields, a geo_point and the nested offers
// array with nested car compatibilities.
const mappingV1 = `{
  "settings": {"index": {"knn": true}},
  "mappings": {
    "properties": {
      "content": {"type": "text"},
      "embedding": {
        "type": "knn_vector",
        "dimension": 768,
        "method": {"name": "hnsw", "space_type": "cosinesimil", "engine": "nmslib"}
      },
      "source": {"type": "keyword"},
      "name": {"type": "text"},
      "point": {"type": "geo_point"},
      "city": {"type": "keyword"},
      "country": {"type": "keyword"},
      "offers": {
        "type": "nested",
        "properties": {
          "base_price": {"type": "float"},
          "sale": {"type": "integer"},
          "currency": {"type": "keyword"},
          "offer_type": {"type": "keyword"},
          "car_compatibilities": {
            "type": "nested",
            "properties": {
              "car_type": {"type": "keyword"},
              "car_brand": {"type": "keyword"}
            }
          }
        }
      }
    }
  }
}`
