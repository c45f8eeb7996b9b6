package proto

import (
	"math/big"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
)

var _ = Describe("resp value", func() {
	var v *Value

	BeforeEach(func() {
		v = &Value{}
	})

	It("int64", func() {
		v.Typ = redisInteger
		v.Integer = 1024
		Expect(v.Int64()).To(Equal(int64(1024)))

		v.Typ = redisString
		v.Str = "2048"
		Expect(v.Int64()).To(Equal(int64(2048)))

		v.Typ = redisBigInt
		v.BigInt = &big.Int{}
		v.BigInt.SetString("4096", 10)
		Expect(v.Int64()).To(Equal(int64(4096)))

		v.Typ = redisArray
		_, err := v.Int64()
		Expect(err).To(HaveOccurred())
	})

	It("float64", func() {
		v.Typ = redisFloat
		v.Float = 1024.1024
		Expect(v.Float64()).To(Equal(1024.1024))

		v.Typ = redisString
		v.Str = "2048.2048"
		Expect(v.Float64()).To(Equal(2048.2048))

		v.Str = "-nan"
		Expect(v.Float64()).To(Equal(float64(0)))

		v.Typ = redisInteger
		v.Integer = 7
		Expect(v.Float64()).To(Equal(float64(7)))
	})

	It("bool", func() {
		v.Typ = redisBool
		v.Boolean = true
		Expect(v.Bool()).To(BeTrue())

		v.Typ = redisInteger
		v.Integer = 1
		Expect(v.Bool()).To(BeTrue())

		v.Typ = redisString
		v.Str = "1"
		Expect(v.Bool()).To(BeTrue())
	})

	It("status", func() {
		v.Typ = redisString
		v.Str = "OK"
		Expect(v.Status()).To(BeTrue())

		v.Str = "QUEUED"
		Expect(v.Status()).To(BeFalse())

		v.Typ = redisNil
		Expect(v.Status()).To(BeFalse())

		v.Typ = redisInteger
		_, err := v.Status()
		Expect(err).To(HaveOccurred())

		v.Typ = redisError
		v.RedisError = RedisError("ERR item exists")
		_, err = v.Status()
		Expect(err).To(MatchError("ERR item exists"))
	})

	It("member", func() {
		Expect(FromInterface(int64(1)).Member()).To(BeTrue())
		Expect(FromInterface("1").Member()).To(BeTrue())
		Expect(FromInterface(true).Member()).To(BeTrue())
		Expect(FromInterface(int64(0)).Member()).To(BeFalse())
		Expect(FromInterface(nil).Member()).To(BeFalse())
		Expect(FromInterface("yes").Member()).To(BeFalse())
	})

	It("string", func() {
		v.Typ = redisString
		v.Str = "string"
		Expect(v.String()).To(Equal("string"))

		v.Typ = redisStatus
		v.Str = "status"
		Expect(v.String()).To(Equal("status"))

		v.Typ = redisInteger
		v.Integer = 1024
		Expect(v.String()).To(Equal("1024"))

		v.Typ = redisFloat
		v.Float = 2048.2048
		Expect(v.String()).To(Equal("2048.2048"))

		v.Typ = redisBool
		v.Boolean = true
		Expect(v.String()).To(Equal("true"))

		v.Typ = redisNil
		_, err := v.String()
		Expect(err).To(HaveOccurred())
		Expect(v.Text()).To(Equal(""))
	})

	It("pairs from a flattened array", func() {
		v = FromInterface([]interface{}{"width", int64(1000), "depth", int64(5)})
		pairs, err := v.Pairs()
		Expect(err).NotTo(HaveOccurred())
		Expect(pairs).To(HaveLen(2))
		Expect(pairs[1].Key.String()).To(Equal("depth"))
		Expect(pairs[1].Val.Int64()).To(Equal(int64(5)))

		v = FromInterface([]interface{}{"width", int64(1000), "depth"})
		_, err = v.Pairs()
		Expect(err).To(HaveOccurred())
	})

	It("map scan over a map reply", func() {
		v = FromInterface(map[interface{}]interface{}{"k": int64(1), "b": "x", int64(2): "y"})
		Expect(v.Map).To(HaveLen(3))
		Expect(v.Map[0].Key.Integer).To(Equal(int64(2)))
		Expect(v.Map[1].Key.Str).To(Equal("b"))
		Expect(v.Map[2].Key.Str).To(Equal("k"))

		v = FromInterface(map[interface{}]interface{}{"k": int64(1)})
		seen := map[string]int64{}
		err := v.MapScan(func(key string, val *Value) error {
			n, err := val.Int64()
			seen[key] = n
			return err
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal(map[string]int64{"k": 1}))

		v = FromInterface("scalar")
		Expect(v.MapScan(func(string, *Value) error { return nil })).To(HaveOccurred())
	})

	It("slice string", func() {
		v = FromInterface([]interface{}{int64(1024), 2048.2048, "hello", true, nil})
		Expect(v.SliceString()).To(Equal([]string{
			"1024", "2048.2048", "hello", "true", "",
		}))
	})

	It("slice int64", func() {
		v = FromInterface([]interface{}{int64(1024), "2048"})
		Expect(v.SliceInt64()).To(Equal([]int64{1024, 2048}))
	})

	It("slice float64", func() {
		v = FromInterface([]interface{}{1024.1024, "2048.2048", "-nan"})
		Expect(v.SliceFloat64()).To(Equal([]float64{1024.1024, 2048.2048, 0}))
	})

	It("slice member", func() {
		v = FromInterface([]interface{}{int64(1), int64(0), int64(1), nil})
		Expect(v.SliceMember()).To(Equal([]bool{true, false, true, false}))

		_, err := FromInterface(int64(1)).SliceMember()
		Expect(err).To(HaveOccurred())
	})

	It("array len", func() {
		v = FromInterface([]interface{}{int64(1), "a"})
		_, err := v.ArrayLen(2)
		Expect(err).NotTo(HaveOccurred())
		_, err = v.ArrayLen(3)
		Expect(err).To(HaveOccurred())
	})

	It("embedded errors", func() {
		v = FromInterface([]interface{}{int64(1), RedisError("ERR TSDB: invalid timestamp")})
		arr, err := v.Array()
		Expect(err).NotTo(HaveOccurred())
		Expect(arr[1].Err()).To(MatchError("ERR TSDB: invalid timestamp"))
		_, err = v.SliceInt64()
		Expect(err).To(HaveOccurred())
	})

	It("interface", func() {
		v = FromInterface([]interface{}{"a", int64(1), []interface{}{nil}})
		Expect(v.Interface()).To(Equal([]interface{}{"a", int64(1), []interface{}{nil}}))
	})
})
