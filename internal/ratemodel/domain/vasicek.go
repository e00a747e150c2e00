// Package domain 短期利率模型服务领域层
// 生成摘要：
// 1) 实现 Vasicek 模型的解析解（条件均值、条件方差、负利率概率）
// 2) 定义模型参数值对象及其校验规则
// 3) 实现稳态矩、均值回归半衰期等派生指标
package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMustBePositive 参数必须为正
	ErrMustBePositive = errors.New("must be positive")
	// ErrMustBeNonNegative 参数必须非负
	ErrMustBeNonNegative = errors.New("must be non-negative")
	// ErrNotFinite 参数必须为有限实数
	ErrNotFinite = errors.New("must be finite")
)

// VasicekParams Vasicek 模型参数
// dr_t = gamma * (rBar - r_t) dt + sigma dW_t
type VasicekParams struct {
	Gamma float64 // 均值回归速度，要求 > 0
	RBar  float64 // 长期均值利率
	R0    float64 // 初始短期利率
	Sigma float64 // 瞬时波动率，要求 >= 0
}

// Validate 校验模型参数定义域
func (p VasicekParams) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"gamma", p.Gamma},
		{"r_bar", p.RBar},
		{"r_0", p.R0},
		{"sigma", p.Sigma},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s: %w", f.name, ErrNotFinite)
		}
	}
	if p.Gamma <= 0 {
		return fmt.Errorf("gamma: %w", ErrMustBePositive)
	}
	if p.Sigma < 0 {
		return fmt.Errorf("sigma: %w", ErrMustBeNonNegative)
	}
	return nil
}

// ExpectedRate 计算条件期望 E[r_t | r_0]
// r_0 * e^{-gamma*t} + rBar * (1 - e^{-gamma*t})
// gamma = 0 时无除法参与，退化为 r_0，无需特判；NaN/Inf 输入按 IEEE-754 规则传播。
func ExpectedRate(gamma, t, rBar, r0 float64) float64 {
	decay := math.Exp(-gamma * t)
	return r0*decay + rBar*(1-decay)
}

// RateVariance 计算条件方差 Var[r_t | r_0]
// sigma^2 / (2*gamma) * (1 - e^{-2*gamma*t})
// 公式对 2*gamma 做除法，gamma <= 0 为定义域错误，显式拒绝而非放任 Inf/NaN。
func RateVariance(sigma, gamma, t float64) (float64, error) {
	if gamma <= 0 {
		return 0, fmt.Errorf("gamma: %w", ErrMustBePositive)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("t: %w", ErrNotFinite)
	}
	if t < 0 {
		return 0, fmt.Errorf("t: %w", ErrMustBeNonNegative)
	}
	return sigma * sigma / (2 * gamma) * (1 - math.Exp(-2*gamma*t)), nil
}

// RateStdDev 计算条件标准差
func RateStdDev(sigma, gamma, t float64) (float64, error) {
	v, err := RateVariance(sigma, gamma, t)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// NegativeRateProbability 计算负利率概率 P(r_t < 0) = Phi(-mean / sqrt(variance))
// r_t 服从正态分布，由 Vasicek SDE 的解析解导出。
func NegativeRateProbability(mean, variance float64) (float64, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0, fmt.Errorf("mean: %w", ErrNotFinite)
	}
	if math.IsNaN(variance) || math.IsInf(variance, 0) {
		return 0, fmt.Errorf("variance: %w", ErrNotFinite)
	}
	if variance <= 0 {
		return 0, fmt.Errorf("variance: %w", ErrMustBePositive)
	}
	return normCDF(-mean / math.Sqrt(variance)), nil
}

// StationaryMean 稳态均值（t -> ∞ 时的条件期望极限）
func StationaryMean(p VasicekParams) float64 {
	return p.RBar
}

// StationaryVariance 稳态方差 sigma^2 / (2*gamma)
func StationaryVariance(p VasicekParams) (float64, error) {
	if p.Gamma <= 0 {
		return 0, fmt.Errorf("gamma: %w", ErrMustBePositive)
	}
	return p.Sigma * p.Sigma / (2 * p.Gamma), nil
}

// HalfLife 均值回归半衰期 ln2 / gamma
// 期望值与长期均值的偏离衰减一半所需的时间。
func HalfLife(gamma float64) (float64, error) {
	if gamma <= 0 {
		return 0, fmt.Errorf("gamma: %w", ErrMustBePositive)
	}
	return math.Ln2 / gamma, nil
}

// RateDistribution 给定期限下短期利率的分布特征
type RateDistribution struct {
	Horizon      float64 `json:"horizon"`
	Mean         float64 `json:"mean"`
	Variance     float64 `json:"variance"`
	StdDev       float64 `json:"std_dev"`
	ProbNegative float64 `json:"prob_negative"`
}

// DistributionAt 计算期限 t 下 r_t 的完整分布特征
// t = 0 时方差为 0，分布退化为 r_0 处的点质量，负利率概率取 0 或 1。
func DistributionAt(p VasicekParams, t float64) (*RateDistribution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, fmt.Errorf("t: %w", ErrNotFinite)
	}
	if t < 0 {
		return nil, fmt.Errorf("t: %w", ErrMustBeNonNegative)
	}

	mean := ExpectedRate(p.Gamma, t, p.RBar, p.R0)
	variance, err := RateVariance(p.Sigma, p.Gamma, t)
	if err != nil {
		return nil, err
	}

	dist := &RateDistribution{
		Horizon:  t,
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}
	if variance > 0 {
		prob, err := NegativeRateProbability(mean, variance)
		if err != nil {
			return nil, err
		}
		dist.ProbNegative = prob
	} else if mean < 0 {
		dist.ProbNegative = 1
	}
	return dist, nil
}

// normCDF 标准正态分布累积分布函数
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
