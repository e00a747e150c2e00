package domain

import (
	"errors"
	"math"
	"testing"
)

func assertFloatEqual(t *testing.T, x1, x2, tolerance float64) {
	t.Helper()
	if math.Abs(x1-x2) > tolerance {
		t.Errorf("not equal, x1: %v, x2: %v", x1, x2)
	}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExpectedRate(t *testing.T) {
	// gamma=0.25, t=5, rBar=0.04, r0=0.02
	v := ExpectedRate(0.25, 5, 0.04, 0.02)
	t.Log("expected rate:", v)
	assertFloatEqual(t, 0.0342699, v, 1e-6)

	// gamma=0.15, t=5, rBar=0.05, r0=0.03
	v = ExpectedRate(0.15, 5, 0.05, 0.03)
	t.Log("expected rate:", v)
	assertFloatEqual(t, 0.0405527, v, 1e-6)
}

func TestExpectedRateAtZero(t *testing.T) {
	// t = 0 时精确返回 r0
	v := ExpectedRate(0.25, 0, 0.04, 0.02)
	if v != 0.02 {
		t.Errorf("expected exactly r0, got %v", v)
	}
}

func TestExpectedRateLongRun(t *testing.T) {
	// t -> ∞ 收敛到长期均值
	v := ExpectedRate(0.25, 1000, 0.04, 0.02)
	assertFloatEqual(t, 0.04, v, 1e-6)

	v = ExpectedRate(0.15, 1000, 0.05, 0.9)
	assertFloatEqual(t, 0.05, v, 1e-6)
}

func TestExpectedRateZeroGamma(t *testing.T) {
	// gamma = 0 无除法参与，退化为 r0
	v := ExpectedRate(0, 7.5, 0.04, 0.02)
	if v != 0.02 {
		t.Errorf("expected r0 for gamma=0, got %v", v)
	}
}

func TestRateVariance(t *testing.T) {
	// sigma=0.05, gamma=0.25, t=5
	v, err := RateVariance(0.05, 0.25, 5)
	assertNoError(t, err)
	t.Log("variance:", v)
	assertFloatEqual(t, 0.0045896, v, 1e-6)
}

func TestRateVarianceAtZero(t *testing.T) {
	v, err := RateVariance(0.05, 0.25, 0)
	assertNoError(t, err)
	if v != 0 {
		t.Errorf("expected exactly 0, got %v", v)
	}
}

func TestRateVarianceStationaryLimit(t *testing.T) {
	// t -> ∞ 收敛到稳态方差 sigma^2/(2*gamma)
	v, err := RateVariance(0.05, 0.25, 1000)
	assertNoError(t, err)
	assertFloatEqual(t, 0.05*0.05/(2*0.25), v, 1e-9)
}

func TestRateVarianceNonNegative(t *testing.T) {
	for _, tc := range []struct{ sigma, gamma, horizon float64 }{
		{0.05, 0.25, 5},
		{0.3, 0.01, 0.5},
		{0, 1.5, 10},
		{0.02, 2, 0.001},
	} {
		v, err := RateVariance(tc.sigma, tc.gamma, tc.horizon)
		assertNoError(t, err)
		if v < 0 {
			t.Errorf("negative variance %v for sigma=%v gamma=%v t=%v", v, tc.sigma, tc.gamma, tc.horizon)
		}
	}
}

func TestRateVarianceDomain(t *testing.T) {
	if _, err := RateVariance(0.05, 0, 5); !errors.Is(err, ErrMustBePositive) {
		t.Errorf("expected ErrMustBePositive for gamma=0, got %v", err)
	}
	if _, err := RateVariance(0.05, -0.1, 5); !errors.Is(err, ErrMustBePositive) {
		t.Errorf("expected ErrMustBePositive for gamma<0, got %v", err)
	}
	if _, err := RateVariance(0.05, 0.25, -1); !errors.Is(err, ErrMustBeNonNegative) {
		t.Errorf("expected ErrMustBeNonNegative for t<0, got %v", err)
	}
	if _, err := RateVariance(0.05, 0.25, math.NaN()); !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite for t=NaN, got %v", err)
	}
	if _, err := RateVariance(0.05, 0.25, math.Inf(1)); !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite for t=+Inf, got %v", err)
	}
}

func TestNegativeRateProbability(t *testing.T) {
	// mean=0.0342699, variance=0.0045896
	p, err := NegativeRateProbability(0.0342699, 0.0045896)
	assertNoError(t, err)
	t.Log("prob negative:", p)
	assertFloatEqual(t, 0.306479, p, 1e-5)

	if p < 0 || p > 1 {
		t.Errorf("probability out of [0,1]: %v", p)
	}
}

func TestNegativeRateProbabilityDomain(t *testing.T) {
	if _, err := NegativeRateProbability(0.03, 0); !errors.Is(err, ErrMustBePositive) {
		t.Errorf("expected ErrMustBePositive for variance=0, got %v", err)
	}
	if _, err := NegativeRateProbability(0.03, -0.001); !errors.Is(err, ErrMustBePositive) {
		t.Errorf("expected ErrMustBePositive for variance<0, got %v", err)
	}
	if _, err := NegativeRateProbability(math.NaN(), 0.001); !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite for mean=NaN, got %v", err)
	}
	if _, err := NegativeRateProbability(0.03, math.NaN()); !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite for variance=NaN, got %v", err)
	}
}

func TestStationaryMoments(t *testing.T) {
	p := VasicekParams{Gamma: 0.25, RBar: 0.04, R0: 0.02, Sigma: 0.05}

	if StationaryMean(p) != 0.04 {
		t.Errorf("stationary mean should equal rBar")
	}

	v, err := StationaryVariance(p)
	assertNoError(t, err)
	assertFloatEqual(t, 0.005, v, 1e-12)
}

func TestHalfLife(t *testing.T) {
	h, err := HalfLife(0.25)
	assertNoError(t, err)
	assertFloatEqual(t, math.Ln2/0.25, h, 1e-12)

	// 半衰期处期望值与长期均值的偏离应恰好减半
	p := VasicekParams{Gamma: 0.25, RBar: 0.04, R0: 0.02, Sigma: 0.05}
	mid := ExpectedRate(p.Gamma, h, p.RBar, p.R0)
	assertFloatEqual(t, (p.R0+p.RBar)/2, mid, 1e-12)

	if _, err := HalfLife(0); !errors.Is(err, ErrMustBePositive) {
		t.Errorf("expected ErrMustBePositive, got %v", err)
	}
}

func TestDistributionAt(t *testing.T) {
	p := VasicekParams{Gamma: 0.25, RBar: 0.04, R0: 0.02, Sigma: 0.05}

	dist, err := DistributionAt(p, 5)
	assertNoError(t, err)

	assertFloatEqual(t, 0.0342699, dist.Mean, 1e-6)
	assertFloatEqual(t, 0.0045896, dist.Variance, 1e-6)
	assertFloatEqual(t, math.Sqrt(dist.Variance), dist.StdDev, 1e-12)
	assertFloatEqual(t, 0.306479, dist.ProbNegative, 1e-5)
}

func TestDistributionAtZeroHorizon(t *testing.T) {
	// t = 0 分布退化为 r0 处的点质量
	p := VasicekParams{Gamma: 0.25, RBar: 0.04, R0: 0.02, Sigma: 0.05}

	dist, err := DistributionAt(p, 0)
	assertNoError(t, err)
	if dist.Mean != 0.02 || dist.Variance != 0 || dist.ProbNegative != 0 {
		t.Errorf("unexpected degenerate distribution: %+v", dist)
	}

	p.R0 = -0.01
	dist, err = DistributionAt(p, 0)
	assertNoError(t, err)
	if dist.ProbNegative != 1 {
		t.Errorf("expected prob 1 for negative point mass, got %v", dist.ProbNegative)
	}
}

func TestDistributionAtNonFiniteHorizon(t *testing.T) {
	p := VasicekParams{Gamma: 0.25, RBar: 0.04, R0: 0.02, Sigma: 0.05}

	for _, horizon := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := DistributionAt(p, horizon); !errors.Is(err, ErrNotFinite) {
			t.Errorf("expected ErrNotFinite for t=%v, got %v", horizon, err)
		}
	}
}

func TestVasicekParamsValidate(t *testing.T) {
	valid := VasicekParams{Gamma: 0.25, RBar: 0.04, R0: 0.02, Sigma: 0.05}
	assertNoError(t, valid.Validate())

	bad := valid
	bad.Gamma = 0
	if err := bad.Validate(); !errors.Is(err, ErrMustBePositive) {
		t.Errorf("expected ErrMustBePositive, got %v", err)
	}

	bad = valid
	bad.Sigma = -0.1
	if err := bad.Validate(); !errors.Is(err, ErrMustBeNonNegative) {
		t.Errorf("expected ErrMustBeNonNegative, got %v", err)
	}

	bad = valid
	bad.RBar = math.NaN()
	if err := bad.Validate(); !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite, got %v", err)
	}

	bad = valid
	bad.R0 = math.Inf(1)
	if err := bad.Validate(); !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite, got %v", err)
	}
}
