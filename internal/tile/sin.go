package tile

import "math"

// sin is the fdlibm sine used by JavaScript engines. math.Sin uses
// different kernels and can disagree in the last bit, which the *10000
// frac step in Stream.At magnifies into visible digits.
//
// Every product that feeds a sum is wrapped in float64() so the compiler
// cannot fuse it into an FMA.
func sin(x float64) float64 {
	ix := highWord(x) & 0x7fffffff
	switch {
	case ix <= 0x3fe921fb:
		return kernelSin(x, 0, false)
	case ix >= 0x7ff00000:
		return x - x
	}

	n, y0, y1 := remPio2(x)
	switch n & 3 {
	case 0:
		return kernelSin(y0, y1, true)
	case 1:
		return kernelCos(y0, y1)
	case 2:
		return -kernelSin(y0, y1, true)
	default:
		return -kernelCos(y0, y1)
	}
}

func highWord(x float64) int32 {
	return int32(math.Float64bits(x) >> 32)
}

func lowWord(x float64) uint32 {
	return uint32(math.Float64bits(x))
}

func fromWords(hi int32, lo uint32) float64 {
	return math.Float64frombits(uint64(uint32(hi))<<32 | uint64(lo))
}

const (
	s1 = -1.66666666666666324348e-01 // 0xBFC55555, 0x55555549
	s2 = 8.33333333332248946124e-03  // 0x3F811111, 0x1110F8A6
	s3 = -1.98412698298579493134e-04 // 0xBF2A01A0, 0x19C161D5
	s4 = 2.75573137070700676789e-06  // 0x3EC71DE3, 0x57B1FE7D
	s5 = -2.50507602534068634195e-08 // 0xBE5AE5E6, 0x8A2B9CEB
	s6 = 1.58969099521155010221e-10  // 0x3DE5D93A, 0x5ACFD57C

	c1 = 4.16666666666666019037e-02  // 0x3FA55555, 0x5555554C
	c2 = -1.38888888888741095749e-03 // 0xBF56C16C, 0x16C15177
	c3 = 2.48015872894767294178e-05  // 0x3EFA01A0, 0x19CB1590
	c4 = -2.75573143513906633035e-07 // 0xBE927E4F, 0x809C52AD
	c5 = 2.08757232129817482790e-09  // 0x3E21EE9E, 0xBDB4B1C4
	c6 = -1.13596475577881948265e-11 // 0xBDA8FAE9, 0xBE8838D4
)

// kernelSin is sin on [-pi/4, pi/4]; y is the tail of x when tail is set.
func kernelSin(x, y float64, tail bool) float64 {
	ix := highWord(x) & 0x7fffffff
	if ix < 0x3e400000 && int32(x) == 0 {
		return x
	}
	z := float64(x * x)
	v := float64(z * x)
	r := s2 + float64(z*(s3+float64(z*(s4+float64(z*(s5+float64(z*s6)))))))
	if !tail {
		return x + float64(v*(s1+float64(z*r)))
	}
	return x - ((float64(z*(float64(0.5*y)-float64(v*r))) - y) - float64(v*s1))
}

// kernelCos is cos on [-pi/4, pi/4] for x with tail y.
func kernelCos(x, y float64) float64 {
	ix := highWord(x) & 0x7fffffff
	if ix < 0x3e400000 && int32(x) == 0 {
		return 1
	}
	z := float64(x * x)
	r := float64(z * (c1 + float64(z*(c2+float64(z*(c3+float64(z*(c4+float64(z*(c5+float64(z*c6)))))))))))
	if ix < 0x3fd33333 {
		return 1 - (float64(0.5*z) - (float64(z*r) - float64(x*y)))
	}
	var qx float64
	if ix > 0x3fe90000 {
		qx = 0.28125
	} else {
		qx = fromWords(ix-0x00200000, 0) // x/4
	}
	iz := float64(0.5*z) - qx
	a := 1 - qx
	return a - (iz - (float64(z*r) - float64(x*y)))
}

// twoOverPi holds 2/pi in 24-bit chunks.
var twoOverPi = [...]int32{
	0xA2F983, 0x6E4E44, 0x1529FC, 0x2757D1, 0xF534DD, 0xC0DB62,
	0x95993C, 0x439041, 0xFE5163, 0xABDEBB, 0xC561B7, 0x246E3A,
	0x424DD2, 0xE00649, 0x2EEA09, 0xD1921C, 0xFE1DEB, 0x1CB129,
	0xA73EE8, 0x8235F5, 0x2EBB44, 0x84E99C, 0x7026B4, 0x5F7E41,
	0x3991D6, 0x398353, 0x39F49C, 0x845F8B, 0xBDF928, 0x3B1FF8,
	0x97FFDE, 0x05980F, 0xEF2F11, 0x8B5A0A, 0x6D1F6D, 0x367ECF,
	0x27CB09, 0xB74F46, 0x3F669E, 0x5FEA2D, 0x7527BA, 0xC7EBE5,
	0xF17B3D, 0x0739F7, 0x8A5292, 0xEA6BFB, 0x5FB11F, 0x8D5D08,
	0x560330, 0x46FC7B, 0x6BABF0, 0xCFBC20, 0x9AF436, 0x1DA9E3,
	0x91615E, 0xE61B08, 0x659985, 0x5F14A0, 0x68408D, 0xFFD880,
	0x4D7327, 0x310606, 0x1556CA, 0x73A8C9, 0x60E27B, 0xC08C6B,
}

// npio2HighWords are the high words of n*pi/2 for n in 1..32.
var npio2HighWords = [...]int32{
	0x3FF921FB, 0x400921FB, 0x4012D97C, 0x401921FB, 0x401F6A7A, 0x4022D97C,
	0x4025FDBB, 0x402921FB, 0x402C463A, 0x402F6A7A, 0x4031475C, 0x4032D97C,
	0x40346B9C, 0x4035FDBB, 0x40378FDB, 0x403921FB, 0x403AB41B, 0x403C463A,
	0x403DD85A, 0x403F6A7A, 0x40407E4C, 0x4041475C, 0x4042106C, 0x4042D97C,
	0x4043A28C, 0x40446B9C, 0x404534AC, 0x4045FDBB, 0x4046C6CB, 0x40478FDB,
	0x404858EB, 0x404921FB,
}

const (
	two24   = 1.67772160000000000000e+07
	twon24  = 5.96046447753906250000e-08
	invpio2 = 6.36619772367581382433e-01 // 0x3FE45F30, 0x6DC9C883
	pio2_1  = 1.57079632673412561417e+00 // first 33 bits of pi/2
	pio2_1t = 6.07710050650619224932e-11 // pi/2 - pio2_1
	pio2_2  = 6.07710050630396597660e-11 // second 33 bits of pi/2
	pio2_2t = 2.02226624879595063154e-21 // pi/2 - (pio2_1+pio2_2)
	pio2_3  = 2.02226624871116645580e-21 // third 33 bits of pi/2
	pio2_3t = 8.47842766036889956997e-32 // pi/2 - (pio2_1+pio2_2+pio2_3)
)

// remPio2 returns n and y0+y1 = x - n*pi/2 with |y0+y1| <= pi/4.
func remPio2(x float64) (n int32, y0, y1 float64) {
	hx := highWord(x)
	ix := hx & 0x7fffffff

	if ix <= 0x3fe921fb {
		return 0, x, 0
	}

	if ix < 0x4002d97c { // |x| < 3pi/4
		if hx > 0 {
			z := x - pio2_1
			if ix != 0x3ff921fb {
				y0 = z - pio2_1t
				y1 = (z - y0) - pio2_1t
			} else { // near pi/2
				z -= pio2_2
				y0 = z - pio2_2t
				y1 = (z - y0) - pio2_2t
			}
			return 1, y0, y1
		}
		z := x + pio2_1
		if ix != 0x3ff921fb {
			y0 = z + pio2_1t
			y1 = (z - y0) + pio2_1t
		} else {
			z += pio2_2
			y0 = z + pio2_2t
			y1 = (z - y0) + pio2_2t
		}
		return -1, y0, y1
	}

	if ix <= 0x413921fb { // |x| <= 2^19 * pi/2
		t := math.Abs(x)
		n = int32(float64(t*invpio2) + 0.5)
		fn := float64(n)
		r := t - float64(fn*pio2_1)
		w := float64(fn * pio2_1t)
		if n < 32 && ix != npio2HighWords[n-1] {
			y0 = r - w
		} else {
			j := ix >> 20
			y0 = r - w
			i := j - (highWord(y0)>>20)&0x7ff
			if i > 16 {
				t = r
				w = float64(fn * pio2_2)
				r = t - w
				w = float64(fn*pio2_2t) - ((t - r) - w)
				y0 = r - w
				i = j - (highWord(y0)>>20)&0x7ff
				if i > 49 {
					t = r
					w = float64(fn * pio2_3)
					r = t - w
					w = float64(fn*pio2_3t) - ((t - r) - w)
					y0 = r - w
				}
			}
		}
		y1 = (r - y0) - w
		if hx < 0 {
			return -n, -y0, -y1
		}
		return n, y0, y1
	}

	if ix >= 0x7ff00000 {
		return 0, x - x, x - x
	}

	// split |x| scaled by 2^-e0 into three 24-bit chunks
	e0 := (ix >> 20) - 1046
	z := fromWords(ix-e0<<20, lowWord(x))
	var tx [3]float64
	for i := 0; i < 2; i++ {
		tx[i] = float64(int32(z))
		z = float64((z - tx[i]) * two24)
	}
	tx[2] = z
	nx := 3
	for tx[nx-1] == 0 {
		nx--
	}
	n, y0, y1 = kernelRemPio2(tx[:nx], int(e0))
	if hx < 0 {
		return -n, -y0, -y1
	}
	return n, y0, y1
}

// pio2Chunks is pi/2 split into 24-bit pieces.
var pio2Chunks = [...]float64{
	1.57079625129699707031e+00, // 0x3FF921FB, 0x40000000
	7.54978941586159635335e-08, // 0x3E74442D, 0x00000000
	5.39030252995776476554e-15, // 0x3CF84698, 0x80000000
	3.28200341580791294123e-22, // 0x3B78CC51, 0x60000000
	1.27065575308067607349e-29, // 0x39F01B83, 0x80000000
	1.22933308981111328932e-36, // 0x387A2520, 0x40000000
	2.73370053816464559624e-44, // 0x36E38222, 0x80000000
	2.16741683877804819444e-51, // 0x3569F31D, 0x00000000
}

// kernelRemPio2 is the Payne-Hanek reduction for large arguments, at
// 53-bit precision. x holds 24-bit chunks of the input scaled by 2^-e0.
func kernelRemPio2(x []float64, e0 int) (int32, float64, float64) {
	const jk = 4
	const jp = jk

	var (
		iq    [20]int32
		f, q  [20]float64
		fq    [20]float64
		z, fw float64
		n, ih int32
	)
	jx := len(x) - 1
	jv := (e0 - 3) / 24
	if jv < 0 {
		jv = 0
	}
	q0 := e0 - 24*(jv+1)
	jz := jk

	for i, j := 0, jv-jx; i <= jx+jk; i, j = i+1, j+1 {
		if j >= 0 {
			f[i] = float64(twoOverPi[j])
		}
	}

	for i := 0; i <= jk; i++ {
		fw = 0
		for j := 0; j <= jx; j++ {
			fw += float64(x[j] * f[jx+i-j])
		}
		q[i] = fw
	}

	for {
		// distill q into 24-bit integers, most significant last
		z = q[jz]
		for i, j := 0, jz; j > 0; i, j = i+1, j-1 {
			fw = float64(int32(float64(twon24 * z)))
			iq[i] = int32(z - float64(two24*fw))
			z = q[j-1] + fw
		}

		z = math.Ldexp(z, q0)
		z -= float64(8.0 * math.Floor(float64(z*0.125)))
		n = int32(z)
		z -= float64(n)
		ih = 0
		switch {
		case q0 > 0:
			k := iq[jz-1] >> (24 - q0)
			n += k
			iq[jz-1] -= k << (24 - q0)
			ih = iq[jz-1] >> (23 - q0)
		case q0 == 0:
			ih = iq[jz-1] >> 23
		case z >= 0.5:
			ih = 2
		}

		if ih > 0 { // fraction > 0.5: take 1 - fraction
			n++
			var carry int32
			for i := 0; i < jz; i++ {
				v := iq[i]
				if carry == 0 {
					if v != 0 {
						carry = 1
						iq[i] = 0x1000000 - v
					}
				} else {
					iq[i] = 0xffffff - v
				}
			}
			switch q0 {
			case 1:
				iq[jz-1] &= 0x7fffff
			case 2:
				iq[jz-1] &= 0x3fffff
			}
			if ih == 2 {
				z = 1 - z
				if carry != 0 {
					z -= math.Ldexp(1, q0)
				}
			}
		}

		if z != 0 {
			break
		}
		var bits int32
		for i := jz - 1; i >= jk; i-- {
			bits |= iq[i]
		}
		if bits != 0 {
			break
		}
		// all remaining chunks vanished; pull in more of 2/pi
		chunks := 1
		for jk >= chunks && iq[jk-chunks] == 0 {
			chunks++
		}
		for i := jz + 1; i <= jz+chunks; i++ {
			f[jx+i] = float64(twoOverPi[jv+i])
			fw = 0
			for j := 0; j <= jx; j++ {
				fw += float64(x[j] * f[jx+i-j])
			}
			q[i] = fw
		}
		jz += chunks
	}

	if z == 0 {
		jz--
		q0 -= 24
		for iq[jz] == 0 {
			jz--
			q0 -= 24
		}
	} else {
		z = math.Ldexp(z, -q0)
		if z >= two24 {
			fw = float64(int32(float64(twon24 * z)))
			iq[jz] = int32(z - float64(two24*fw))
			jz++
			q0 += 24
			iq[jz] = int32(fw)
		} else {
			iq[jz] = int32(z)
		}
	}

	fw = math.Ldexp(1, q0)
	for i := jz; i >= 0; i-- {
		q[i] = float64(fw * float64(iq[i]))
		fw *= twon24
	}

	for i := jz; i >= 0; i-- {
		fw = 0
		for k := 0; k <= jp && k <= jz-i; k++ {
			fw += float64(pio2Chunks[k] * q[i+k])
		}
		fq[jz-i] = fw
	}

	fw = 0
	for i := jz; i >= 0; i-- {
		fw += fq[i]
	}
	y0 := fw
	fw = fq[0] - fw
	for i := 1; i <= jz; i++ {
		fw += fq[i]
	}
	y1 := fw
	if ih != 0 {
		y0, y1 = -y0, -y1
	}
	return n & 7, y0, y1
}
