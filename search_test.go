package stack_test

import (
	"errors"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"

	stack "github.com/redis/go-redis-stack"
)

var _ = Describe("Search commands", func() {
	var client *stack.Client
	var driver *scriptDriver

	BeforeEach(func() {
		client, driver = newTestClient()
	})

	Describe("FTCreate", func() {
		It("should build the index definition and schema", func() {
			driver.Reply("OK")
			ok, err := client.FTCreate(ctx, "idx", &stack.FTCreateOptions{
				OnHash:    true,
				Prefix:    []string{"doc:", "blog:"},
				Score:     0.5,
				StopWords: []string{},
			},
				&stack.FieldSchema{FieldName: "title", FieldType: stack.SearchFieldTypeText, Sortable: true, Weight: 2},
				&stack.FieldSchema{FieldName: "$.tags", As: "tags", FieldType: stack.SearchFieldTypeTag, Separator: ";"},
			).Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(driver.LastArgs()).To(Equal([]interface{}{
				"FT.CREATE", "idx", "ON", "HASH", "PREFIX", 2, "doc:", "blog:", "SCORE", 0.5,
				"STOPWORDS", 0, "SCHEMA",
				"title", "TEXT", "SORTABLE", "WEIGHT", 2.0,
				"$.tags", "AS", "tags", "TAG", "SEPARATOR", ";",
			}))
		})

		It("should emit HNSW vector attributes", func() {
			driver.Reply("OK")
			err := client.FTCreate(ctx, "vec", nil, &stack.FieldSchema{
				FieldName: "v",
				FieldType: stack.SearchFieldTypeVector,
				VectorArgs: &stack.FTVectorArgs{HNSWOptions: &stack.FTHNSWOptions{
					Type:            "FLOAT32",
					Dim:             4,
					DistanceMetric:  "COSINE",
					MaxEdgesPerNode: 16,
				}},
			}).Err()
			Expect(err).NotTo(HaveOccurred())
			Expect(driver.LastArgs()).To(Equal([]interface{}{
				"FT.CREATE", "vec", "SCHEMA",
				"v", "VECTOR", "HNSW", 8, "TYPE", "FLOAT32", "DIM", int64(4), "DISTANCE_METRIC", "COSINE", "M", int64(16),
			}))
		})

		It("should reject invalid schemas without sending", func() {
			err := client.FTCreate(ctx, "idx", nil).Err()
			Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())

			err = client.FTCreate(ctx, "idx", &stack.FTCreateOptions{OnHash: true, OnJSON: true},
				&stack.FieldSchema{FieldName: "f", FieldType: stack.SearchFieldTypeText}).Err()
			Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())

			err = client.FTCreate(ctx, "idx", nil, &stack.FieldSchema{FieldName: "f"}).Err()
			Expect(errors.Is(err, stack.ErrUnsupportedValue)).To(BeTrue())

			err = client.FTCreate(ctx, "idx", nil, &stack.FieldSchema{
				FieldName:  "v",
				FieldType:  stack.SearchFieldTypeVector,
				VectorArgs: &stack.FTVectorArgs{},
			}).Err()
			Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())

			Expect(driver.Calls()).To(BeEmpty())
		})

		It("should FTAlter", func() {
			driver.Reply("OK")
			err := client.FTAlter(ctx, "idx", true,
				&stack.FieldSchema{FieldName: "body", FieldType: stack.SearchFieldTypeText, NoStem: true}).Err()
			Expect(err).NotTo(HaveOccurred())
			Expect(driver.LastArgs()).To(Equal([]interface{}{
				"FT.ALTER", "idx", "SKIPINITIALSCAN", "SCHEMA", "ADD", "body", "TEXT", "NOSTEM",
			}))
		})
	})

	Describe("FTSearch", func() {
		It("should build the query options in order", func() {
			driver.Reply([]interface{}{int64(0)})
			err := client.FTSearchWithArgs(ctx, "idx", "@title:hello", &stack.FTSearchOptions{
				WithScores:      true,
				Filters:         []stack.FTSearchFilter{{FieldName: "price", Min: 0, Max: 100}},
				InKeys:          []string{"doc:1"},
				Return:          []stack.FTSearchReturn{{FieldName: "title", As: "t"}, {FieldName: "price"}},
				SortBy:          &stack.FTSearchSortBy{FieldName: "price", Desc: true},
				SortByWithCount: true,
				LimitOffset:     10,
				Limit:           5,
				Params:          map[string]interface{}{"b": 2, "a": "x"},
				DialectVersion:  2,
			}).Err()
			Expect(err).NotTo(HaveOccurred())
			Expect(driver.LastArgs()).To(Equal([]interface{}{
				"FT.SEARCH", "idx", "@title:hello", "WITHSCORES",
				"FILTER", "price", 0, 100,
				"INKEYS", 1, "doc:1",
				"RETURN", 4, "title", "AS", "t", "price",
				"SORTBY", "price", "DESC", "WITHCOUNT",
				"LIMIT", int64(10), int64(5),
				"PARAMS", 4, "a", "x", "b", 2,
				"DIALECT", int64(2),
			}))
		})

		It("should send LIMIT 0 0 for a count-only search", func() {
			driver.Reply([]interface{}{int64(12)})
			res, err := client.FTSearchWithArgs(ctx, "idx", "*", &stack.FTSearchOptions{CountOnly: true}).Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Total).To(Equal(int64(12)))
			Expect(res.Docs).To(BeEmpty())
			Expect(driver.LastArgs()).To(Equal([]interface{}{
				"FT.SEARCH", "idx", "*", "LIMIT", int64(0), int64(0),
			}))
		})

		It("should reject a limit offset without a limit", func() {
			for _, opt := range []*stack.FTSearchOptions{
				{LimitOffset: 10},
				{CountOnly: true, Limit: 5},
				{CountOnly: true, LimitOffset: 5},
			} {
				err := client.FTSearchWithArgs(ctx, "idx", "*", opt).Err()
				Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())
			}
			err := client.FTAggregateWithArgs(ctx, "idx", "*", &stack.FTAggregateOptions{LimitOffset: 10}).Err()
			Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())
			Expect(driver.Calls()).To(BeEmpty())
		})

		It("should reject WITHCOUNT without SORTBY", func() {
			err := client.FTSearchWithArgs(ctx, "idx", "*", &stack.FTSearchOptions{SortByWithCount: true}).Err()
			Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())
			Expect(driver.Calls()).To(BeEmpty())
		})

		It("should decode a RESP2 reply with scores and payloads", func() {
			driver.Reply([]interface{}{
				int64(2),
				"doc:1", "1.5", "p1", []interface{}{"title", "hello"},
				"doc:2", "0.5", "p2", []interface{}{"title", "world"},
			})
			res, err := client.FTSearchWithArgs(ctx, "idx", "*", &stack.FTSearchOptions{
				WithScores:   true,
				WithPayloads: true,
			}).Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Total).To(Equal(int64(2)))
			Expect(res.Docs).To(Equal([]stack.Document{
				{ID: "doc:1", Score: 1.5, Payload: "p1", Fields: map[string]string{"title": "hello"}},
				{ID: "doc:2", Score: 0.5, Payload: "p2", Fields: map[string]string{"title": "world"}},
			}))
		})

		It("should scan document fields into a struct", func() {
			driver.Reply([]interface{}{
				int64(1),
				"doc:1", []interface{}{"title", "hello", "price", "9.5", "stock", "3"},
			})
			res, err := client.FTSearch(ctx, "idx", "*").Result()
			Expect(err).NotTo(HaveOccurred())

			var item struct {
				Title string  `redis:"title"`
				Price float64 `redis:"price"`
				Stock int     `redis:"stock"`
			}
			Expect(res.Docs[0].Scan(&item)).To(Succeed())
			Expect(item.Title).To(Equal("hello"))
			Expect(item.Price).To(Equal(9.5))
			Expect(item.Stock).To(Equal(3))
		})

		It("should decode ids only with NOCONTENT", func() {
			driver.Reply([]interface{}{int64(2), "doc:1", "doc:2"})
			res, err := client.FTSearchWithArgs(ctx, "idx", "*", &stack.FTSearchOptions{NoContent: true}).Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Docs).To(HaveLen(2))
			Expect(res.Docs[1].ID).To(Equal("doc:2"))
			Expect(res.Docs[1].Fields).To(BeNil())
		})

		It("should take the score out of EXPLAINSCORE pairs", func() {
			driver.Reply([]interface{}{
				int64(1),
				"doc:1", []interface{}{"2", []interface{}{"Final TFIDF"}}, []interface{}{"title", "hello"},
			})
			res, err := client.FTSearchWithArgs(ctx, "idx", "*", &stack.FTSearchOptions{
				WithScores:   true,
				ExplainScore: true,
			}).Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Docs[0].Score).To(Equal(2.0))
		})

		It("should reject a reply of the wrong shape", func() {
			driver.Reply([]interface{}{int64(1), "doc:1"})
			err := client.FTSearch(ctx, "idx", "*").Err()
			Expect(err).To(HaveOccurred())
		})

		It("should decode a RESP3 reply", func() {
			driver.Reply(map[string]interface{}{
				"total_results": int64(1),
				"results": []interface{}{
					map[string]interface{}{
						"id":               "doc:1",
						"score":            1.25,
						"extra_attributes": map[string]interface{}{"title": "hello"},
					},
				},
				"warning": []interface{}{},
			})
			res, err := client.FTSearch(ctx, "idx", "*").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal(stack.FTSearchResult{
				Total: 1,
				Docs:  []stack.Document{{ID: "doc:1", Score: 1.25, Fields: map[string]string{"title": "hello"}}},
			}))
		})
	})

	Describe("FTAggregate", func() {
		It("should build the pipeline in order", func() {
			driver.Reply([]interface{}{int64(0)})
			err := client.FTAggregateWithArgs(ctx, "idx", "*", &stack.FTAggregateOptions{
				Load: []stack.FTAggregateLoad{{Field: "@name", As: "n"}},
				GroupBy: []stack.FTAggregateGroupBy{{
					Fields: []string{"@city"},
					Reduce: []stack.FTAggregateReducer{{Reducer: stack.SearchCount, As: "total"}},
				}},
				SortBy:            []stack.FTAggregateSortBy{{FieldName: "@total", Desc: true}},
				SortByMax:         10,
				Apply:             []stack.FTAggregateApply{{Field: "upper(@city)", As: "c"}},
				Limit:             3,
				WithCursor:        true,
				WithCursorOptions: &stack.FTAggregateWithCursor{Count: 100},
			}).Err()
			Expect(err).NotTo(HaveOccurred())
			Expect(driver.LastArgs()).To(Equal([]interface{}{
				"FT.AGGREGATE", "idx", "*",
				"LOAD", 3, "@name", "AS", "n",
				"GROUPBY", 1, "@city", "REDUCE", "COUNT", 0, "AS", "total",
				"SORTBY", 2, "@total", "DESC", "MAX", int64(10),
				"APPLY", "upper(@city)", "AS", "c",
				"LIMIT", int64(0), int64(3),
				"WITHCURSOR", "COUNT", int64(100),
			}))
		})

		It("should reject an unknown reducer", func() {
			err := client.FTAggregateWithArgs(ctx, "idx", "*", &stack.FTAggregateOptions{
				GroupBy: []stack.FTAggregateGroupBy{{
					Fields: []string{"@city"},
					Reduce: []stack.FTAggregateReducer{{}},
				}},
			}).Err()
			Expect(errors.Is(err, stack.ErrUnsupportedValue)).To(BeTrue())
			Expect(driver.Calls()).To(BeEmpty())
		})

		It("should decode rows", func() {
			driver.Reply([]interface{}{
				int64(2),
				[]interface{}{"city", "Paris", "total", "3"},
				[]interface{}{"city", "Rome", "total", "1"},
			})
			res, err := client.FTAggregate(ctx, "idx", "*").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Total).To(Equal(int64(2)))
			Expect(res.CursorID).To(BeZero())
			Expect(res.Rows).To(Equal([]map[string]interface{}{
				{"city": "Paris", "total": "3"},
				{"city": "Rome", "total": "1"},
			}))
		})

		It("should unwrap the cursor reply", func() {
			driver.Reply([]interface{}{
				[]interface{}{int64(5), []interface{}{"city", "Paris"}},
				int64(42),
			})
			res, err := client.FTAggregateWithArgs(ctx, "idx", "*", &stack.FTAggregateOptions{WithCursor: true}).Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.CursorID).To(Equal(int64(42)))
			Expect(res.Total).To(Equal(int64(5)))
			Expect(res.Rows).To(Equal([]map[string]interface{}{{"city": "Paris"}}))
		})

		It("should decode a RESP3 cursor batch", func() {
			driver.Reply([]interface{}{
				map[string]interface{}{
					"total_results": int64(1),
					"results": []interface{}{
						map[string]interface{}{"extra_attributes": map[string]interface{}{"city": "Rome"}},
					},
				},
				int64(0),
			})
			res, err := client.FTCursorRead(ctx, "idx", 42, 10).Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Rows).To(Equal([]map[string]interface{}{{"city": "Rome"}}))
			Expect(res.CursorID).To(BeZero())
			Expect(driver.LastArgs()).To(Equal([]interface{}{
				"FT.CURSOR", "READ", "idx", int64(42), "COUNT", int64(10),
			}))
		})
	})

	Describe("FTInfo", func() {
		It("should decode a RESP2 reply", func() {
			driver.Reply([]interface{}{
				"index_name", "idx",
				"index_options", []interface{}{},
				"index_definition", []interface{}{
					"key_type", "HASH",
					"prefixes", []interface{}{"doc:"},
					"default_score", "1",
				},
				"attributes", []interface{}{
					[]interface{}{
						"identifier", "title", "attribute", "title", "type", "TEXT",
						"WEIGHT", "1", "SORTABLE", "NOSTEM",
					},
					[]interface{}{
						"identifier", "v", "attribute", "v", "type", "VECTOR",
						"algorithm", "HNSW", "data_type", "FLOAT32", "dim", int64(4),
						"distance_metric", "COSINE", "M", int64(16), "ef_construction", int64(200),
					},
				},
				"num_docs", "3",
				"max_doc_id", "3",
				"inverted_sz_mb", "0.5",
				"records_per_doc_avg", "nan",
				"indexing", "0",
				"percent_indexed", "1",
				"gc_stats", []interface{}{"bytes_collected", "0", "average_cycle_time_ms", "-nan"},
				"cursor_stats", []interface{}{"global_idle", int64(0), "global_total", int64(1)},
				"dialect_stats", []interface{}{"dialect_1", int64(0), "dialect_2", int64(4)},
				"Index Errors", []interface{}{
					"indexing failures", int64(1),
					"last indexing error", "Invalid vector",
					"last indexing error key", "doc:9",
				},
				"field statistics", []interface{}{
					[]interface{}{
						"identifier", "v", "attribute", "v",
						"Index Errors", []interface{}{"indexing failures", int64(1)},
					},
				},
			})

			info, err := client.FTInfo(ctx, "idx").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(info.IndexName).To(Equal("idx"))
			Expect(info.IndexOptions).To(BeEmpty())
			Expect(info.IndexDefinition).To(Equal(stack.FTIndexDefinition{
				KeyType:      "HASH",
				Prefixes:     []string{"doc:"},
				DefaultScore: 1,
			}))
			Expect(info.Attributes).To(Equal([]stack.FTAttribute{
				{Identifier: "title", Attribute: "title", Type: "TEXT", Weight: 1, Sortable: true, NoStem: true},
				{
					Identifier: "v", Attribute: "v", Type: "VECTOR", Algorithm: "HNSW", DataType: "FLOAT32",
					Dim: 4, DistanceMetric: "COSINE", M: 16, EFConstruction: 200,
				},
			}))
			Expect(info.Attributes[1].FieldType()).To(Equal(stack.SearchFieldTypeVector))
			Expect(info.NumDocs).To(Equal(int64(3)))
			Expect(info.InvertedSzMB).To(Equal(0.5))
			Expect(info.RecordsPerDocAvg).To(BeZero())
			Expect(info.PercentIndexed).To(Equal(1.0))
			Expect(info.GCStats.AverageCycleTimeMs).To(BeZero())
			Expect(info.CursorStats.GlobalTotal).To(Equal(int64(1)))
			Expect(info.DialectStats).To(Equal(map[string]int64{"dialect_1": 0, "dialect_2": 4}))
			Expect(info.IndexErrors).To(Equal(stack.FTIndexErrors{
				IndexingFailures:     1,
				LastIndexingError:    "Invalid vector",
				LastIndexingErrorKey: "doc:9",
			}))
			Expect(info.FieldStatistics).To(Equal([]stack.FTFieldStatistic{{
				Identifier:  "v",
				Attribute:   "v",
				IndexErrors: stack.FTIndexErrors{IndexingFailures: 1},
			}}))
		})

		It("should decode RESP3 attribute flags", func() {
			driver.Reply(map[string]interface{}{
				"index_name": "idx",
				"attributes": []interface{}{
					map[string]interface{}{
						"identifier": "tag",
						"attribute":  "tag",
						"type":       "TAG",
						"SEPARATOR":  ",",
						"flags":      []interface{}{"CASESENSITIVE", "SORTABLE"},
					},
				},
				"num_docs": int64(0),
			})
			info, err := client.FTInfo(ctx, "idx").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Attributes).To(Equal([]stack.FTAttribute{{
				Identifier: "tag", Attribute: "tag", Type: "TAG", Separator: ",",
				CaseSensitive: true, Sortable: true,
			}}))
		})

		It("should fail on an option without a value", func() {
			driver.Reply([]interface{}{
				"attributes", []interface{}{[]interface{}{"identifier", "t", "WEIGHT"}},
			})
			Expect(client.FTInfo(ctx, "idx").Err()).To(HaveOccurred())
		})
	})

	Describe("FTSpellCheck", func() {
		It("should build TERMS and DISTANCE", func() {
			driver.Reply([]interface{}{})
			err := client.FTSpellCheckWithArgs(ctx, "idx", "helo", &stack.FTSpellCheckOptions{
				Distance: 2,
				Terms:    &stack.SpellCheckTerms{Include: true, Dictionary: "dict"},
			}).Err()
			Expect(err).NotTo(HaveOccurred())
			Expect(driver.LastArgs()).To(Equal([]interface{}{
				"FT.SPELLCHECK", "idx", "helo", "DISTANCE", int64(2), "TERMS", "INCLUDE", "dict",
			}))
		})

		It("should reject an out of range distance", func() {
			err := client.FTSpellCheckWithArgs(ctx, "idx", "helo", &stack.FTSpellCheckOptions{Distance: 5}).Err()
			Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())
		})

		It("should decode RESP2 suggestions", func() {
			driver.Reply([]interface{}{
				[]interface{}{"TERM", "helo", []interface{}{
					[]interface{}{"0.5", "hello"},
					[]interface{}{"0.25", "help"},
				}},
			})
			res, err := client.FTSpellCheck(ctx, "idx", "helo").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal([]stack.SpellCheckResult{{
				Term: "helo",
				Suggestions: []stack.SpellCheckSuggestion{
					{Score: 0.5, Suggestion: "hello"},
					{Score: 0.25, Suggestion: "help"},
				},
			}}))
		})

		It("should decode RESP3 suggestions", func() {
			driver.Reply(map[string]interface{}{
				"results": map[string]interface{}{
					"helo": []interface{}{map[string]interface{}{"hello": 0.5}},
				},
			})
			res, err := client.FTSpellCheck(ctx, "idx", "helo").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal([]stack.SpellCheckResult{{
				Term:        "helo",
				Suggestions: []stack.SpellCheckSuggestion{{Score: 0.5, Suggestion: "hello"}},
			}}))
		})

		It("should decode RESP3 terms in a stable order", func() {
			for i := 0; i < 10; i++ {
				driver.Reply(map[interface{}]interface{}{
					"results": map[interface{}]interface{}{
						"wrld": []interface{}{},
						"helo": []interface{}{},
						"fo":   []interface{}{},
					},
				})
				res, err := client.FTSpellCheck(ctx, "idx", "helo wrld fo").Result()
				Expect(err).NotTo(HaveOccurred())
				Expect(res).To(HaveLen(3))
				Expect([]string{res[0].Term, res[1].Term, res[2].Term}).To(Equal([]string{"fo", "helo", "wrld"}))
			}
		})
	})

	Describe("dictionaries, synonyms and aliases", func() {
		It("should FTDictAdd and FTDictDump", func() {
			driver.Reply(int64(2), []interface{}{"bar", "foo"})
			Expect(client.FTDictAdd(ctx, "dict", "foo", "bar").Val()).To(Equal(int64(2)))
			Expect(client.FTDictDump(ctx, "dict").Val()).To(Equal([]string{"bar", "foo"}))
			Expect(driver.Calls()[0]).To(Equal([]interface{}{"FT.DICTADD", "dict", "foo", "bar"}))
		})

		It("should FTSynUpdate and FTSynDump", func() {
			driver.Reply("OK", []interface{}{"boy", []interface{}{"g1"}, "child", []interface{}{"g1"}})
			err := client.FTSynUpdateWithArgs(ctx, "idx", "g1",
				&stack.FTSynUpdateOptions{SkipInitialScan: true}, "boy", "child").Err()
			Expect(err).NotTo(HaveOccurred())
			Expect(driver.LastArgs()).To(Equal([]interface{}{
				"FT.SYNUPDATE", "idx", "g1", "SKIPINITIALSCAN", "boy", "child",
			}))

			res, err := client.FTSynDump(ctx, "idx").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal([]stack.FTSynDumpResult{
				{Term: "boy", Synonyms: []string{"g1"}},
				{Term: "child", Synonyms: []string{"g1"}},
			}))
		})

		It("should send the alias before the index", func() {
			driver.Reply("OK", "OK")
			Expect(client.FTAliasAdd(ctx, "idx", "a1").Err()).NotTo(HaveOccurred())
			Expect(client.FTAliasDel(ctx, "a1").Err()).NotTo(HaveOccurred())
			Expect(driver.Calls()).To(Equal([][]interface{}{
				{"FT.ALIASADD", "a1", "idx"},
				{"FT.ALIASDEL", "a1"},
			}))
		})

		It("should FTDropIndexWithArgs", func() {
			driver.Reply("OK")
			err := client.FTDropIndexWithArgs(ctx, "idx", &stack.FTDropIndexOptions{DeleteDocs: true}).Err()
			Expect(err).NotTo(HaveOccurred())
			Expect(driver.LastArgs()).To(Equal([]interface{}{"FT.DROPINDEX", "idx", "DD"}))
		})
	})

	Describe("FTConfig", func() {
		It("should decode RESP2 pairs", func() {
			driver.Reply([]interface{}{
				[]interface{}{"TIMEOUT", "500"},
				[]interface{}{"EXTLOAD", nil},
			})
			cmd := client.FTConfigGet(ctx, "*")
			Expect(cmd.Err()).NotTo(HaveOccurred())
			Expect(cmd.Val()).To(Equal(map[string]string{"TIMEOUT": "500", "EXTLOAD": ""}))
			Expect(cmd.FullName()).To(Equal("ft.config get"))
			Expect(driver.LastArgs()).To(Equal([]interface{}{"FT.CONFIG", "GET", "*"}))
		})

		It("should FTConfigSet", func() {
			driver.Reply("OK")
			Expect(client.FTConfigSet(ctx, "TIMEOUT", 100).Val()).To(BeTrue())
			Expect(driver.LastArgs()).To(Equal([]interface{}{"FT.CONFIG", "SET", "TIMEOUT", 100}))
		})
	})
})
