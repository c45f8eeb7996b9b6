package stack_test

import (
	"errors"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"

	stack "github.com/redis/go-redis-stack"
)

var _ = Describe("Graph commands", func() {
	var client *stack.Client
	var driver *scriptDriver
	var graph = "test-graph"

	BeforeEach(func() {
		client, driver = newTestClient()
	})

	It("graph no-result", func() {
		driver.Reply([]interface{}{
			[]interface{}{"Nodes created: 1", "Query internal execution time: 0.1 milliseconds"},
		})
		res, err := client.GraphQuery(ctx, graph, "CREATE ()").Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IsResult()).To(BeFalse())
		Expect(res.Message()).To(ContainElement("Nodes created: 1"))
		Expect(res.Field()).To(BeNil())
		Expect(driver.LastArgs()).To(Equal([]interface{}{"GRAPH.QUERY", graph, "CREATE ()"}))

		_, err = res.Row()
		Expect(err).To(Equal(stack.ErrNoRows))
	})

	It("graph query result-basic", func() {
		driver.Reply([]interface{}{
			[]interface{}{"id", "name", "pr", "success", "non"},
			[]interface{}{
				[]interface{}{int64(1024), "foo", "3.14", "true", nil},
			},
			[]interface{}{"Cached execution: 0"},
		})
		query := "MATCH (p:per {id: 1024}) RETURN p.id as id, p.name as name, p.pr as pr, p.success as success, p.non as non"
		res, err := client.GraphROQuery(ctx, graph, query).Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IsResult()).To(BeTrue())
		Expect(res.Len()).To(Equal(1))
		Expect(driver.LastArgs()[0]).To(Equal("GRAPH.RO_QUERY"))

		row, err := res.Row()
		Expect(err).NotTo(HaveOccurred())
		Expect(row).To(HaveLen(5))
		Expect(row["id"].Int()).To(Equal(1024))
		Expect(row["name"].String()).To(Equal("foo"))
		Expect(row["pr"].Float64()).To(Equal(3.14))
		Expect(row["success"].Bool()).To(BeTrue())
		Expect(row["non"].IsNil()).To(BeTrue())
	})

	It("graph query result-node", func() {
		driver.Reply([]interface{}{
			[]interface{}{"p"},
			[]interface{}{
				[]interface{}{
					[]interface{}{
						[]interface{}{"id", int64(0)},
						[]interface{}{"labels", []interface{}{"per"}},
						[]interface{}{"properties", []interface{}{
							[]interface{}{"id", int64(1024)},
							[]interface{}{"name", "foo"},
							[]interface{}{"pr", "3.14"},
							[]interface{}{"success", "true"},
						}},
					},
				},
			},
			[]interface{}{"Cached execution: 0"},
		})
		res, err := client.GraphQuery(ctx, graph, "MATCH (p:per {id: 1024}) RETURN p").Result()
		Expect(err).NotTo(HaveOccurred())

		row, err := res.Row()
		Expect(err).NotTo(HaveOccurred())
		Expect(row).To(HaveLen(1))

		node, ok := row["p"].Node()
		Expect(ok).To(BeTrue())
		_, ok = row["p"].Edge()
		Expect(ok).To(BeFalse())
		Expect(row["p"].IsNil()).To(BeFalse())

		Expect(node.ID).To(Equal(int64(0)))
		Expect(node.Labels).To(Equal([]string{"per"}))
		Expect(node.Properties["id"].Int()).To(Equal(1024))
		Expect(node.Properties["name"].String()).To(Equal("foo"))
		Expect(node.Properties["pr"].Float64()).To(Equal(3.14))
		Expect(node.Properties["success"].Bool()).To(BeTrue())
	})

	It("graph query result-edge", func() {
		driver.Reply([]interface{}{
			[]interface{}{"r"},
			[]interface{}{
				[]interface{}{
					[]interface{}{
						[]interface{}{"id", int64(7)},
						[]interface{}{"type", "FRIENDS"},
						[]interface{}{"src_node", int64(0)},
						[]interface{}{"dest_node", int64(1)},
						[]interface{}{"properties", []interface{}{
							[]interface{}{"ts", int64(100)},
							[]interface{}{"msg", "txt-msg"},
						}},
					},
				},
			},
			[]interface{}{"Cached execution: 0"},
		})
		query := "MATCH (:per {id: 1024}) - [r:FRIENDS] -> (:per {id: 2048}) RETURN r"
		res, err := client.GraphQuery(ctx, graph, query).Result()
		Expect(err).NotTo(HaveOccurred())

		row, err := res.Row()
		Expect(err).NotTo(HaveOccurred())

		edge, ok := row["r"].Edge()
		Expect(ok).To(BeTrue())
		Expect(edge.ID).To(Equal(int64(7)))
		Expect(edge.Typ).To(Equal("FRIENDS"))
		Expect(edge.SrcNode).To(Equal(int64(0)))
		Expect(edge.DstNode).To(Equal(int64(1)))
		Expect(edge.Properties["ts"].Int()).To(Equal(100))
		Expect(edge.Properties["msg"].String()).To(Equal("txt-msg"))
	})

	It("graph query no-row", func() {
		driver.Reply([]interface{}{
			[]interface{}{"p.name"},
			[]interface{}{},
			[]interface{}{"Cached execution: 0"},
		})
		res, err := client.GraphQuery(ctx, graph, "MATCH (p:per {id: 999}) RETURN p.name").Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IsResult()).To(BeTrue())
		Expect(res.Len()).To(Equal(0))

		row, err := res.Row()
		Expect(err).To(Equal(stack.ErrNoRows))
		Expect(row).To(HaveLen(0))

		rows, err := res.Rows()
		Expect(err).To(Equal(stack.ErrNoRows))
		Expect(rows).To(HaveLen(0))
	})

	It("graph query rows", func() {
		driver.Reply([]interface{}{
			[]interface{}{"id"},
			[]interface{}{
				[]interface{}{int64(1024)},
				[]interface{}{int64(2048)},
				[]interface{}{int64(4096)},
			},
			[]interface{}{"Cached execution: 0"},
		})
		res, err := client.GraphQuery(ctx, graph, "MATCH (p:per) return p.id as id").Result()
		Expect(err).NotTo(HaveOccurred())

		row, err := res.Row()
		Expect(err).NotTo(HaveOccurred())
		Expect(row["id"].Int()).To(Equal(1024))

		rows, err := res.Rows()
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(3))
		Expect(rows[1]["id"].Int()).To(Equal(2048))
		Expect(rows[2]["id"].String()).To(Equal("4096"))
	})

	It("should reject malformed replies", func() {
		driver.Reply(
			[]interface{}{[]interface{}{"a"}, []interface{}{}},
			[]interface{}{
				[]interface{}{"a", "b"},
				[]interface{}{[]interface{}{int64(1)}},
				[]interface{}{},
			},
			[]interface{}{
				[]interface{}{"a"},
				[]interface{}{[]interface{}{[]interface{}{[]interface{}{"foo", int64(1)}}}},
				[]interface{}{},
			},
		)
		Expect(client.GraphQuery(ctx, graph, "RETURN 1").Err()).To(HaveOccurred())
		Expect(client.GraphQuery(ctx, graph, "RETURN 1").Err()).To(HaveOccurred())
		Expect(client.GraphQuery(ctx, graph, "RETURN 1").Err()).To(HaveOccurred())
	})

	It("should reject an empty query", func() {
		err := client.GraphQuery(ctx, graph, "").Err()
		Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())
		Expect(driver.Calls()).To(BeEmpty())
	})

	It("should GraphDelete, GraphList and GraphExplain", func() {
		driver.Reply(
			"Graph removed, internal execution time: 0.2 milliseconds",
			[]interface{}{"g1", "g2"},
			[]interface{}{"Results", "    Project", "        All Node Scan | (p)"},
		)
		Expect(client.GraphDelete(ctx, graph).Val()).To(HavePrefix("Graph removed"))
		Expect(client.GraphList(ctx).Val()).To(Equal([]string{"g1", "g2"}))
		Expect(client.GraphExplain(ctx, graph, "MATCH (p) RETURN p").Val()).To(HaveLen(3))
		Expect(driver.Calls()).To(Equal([][]interface{}{
			{"GRAPH.DELETE", graph},
			{"GRAPH.LIST"},
			{"GRAPH.EXPLAIN", graph, "MATCH (p) RETURN p"},
		}))
	})
})
