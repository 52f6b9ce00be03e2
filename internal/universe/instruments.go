package universe

import "github.com/Alias1177/TradeVault/internal/model"

var usInstruments = []model.Instrument{
	{Symbol: "CRWD", Name: "CrowdStrike", Sector: "Cybersecurity", Cap: "mid", Start: 178, Drift: 0.0006, Volatility: 0.022},
	{Symbol: "CELH", Name: "Celsius Holdings", Sector: "Consumer", Cap: "mid", Start: 52, Drift: 0.0004, Volatility: 0.028},
	{Symbol: "AXON", Name: "Axon Enterprise", Sector: "Defense Tech", Cap: "mid", Start: 210, Drift: 0.0005, Volatility: 0.020},
	{Symbol: "IONQ", Name: "IonQ Inc", Sector: "Quantum", Cap: "small", Start: 9, Drift: 0.0004, Volatility: 0.040},
	{Symbol: "SOUN", Name: "SoundHound AI", Sector: "AI/Voice", Cap: "small", Start: 5, Drift: 0.0005, Volatility: 0.045},
	{Symbol: "ASTS", Name: "AST SpaceMobile", Sector: "Satellite", Cap: "small", Start: 7, Drift: 0.0006, Volatility: 0.042},
	{Symbol: "HIMS", Name: "Hims & Hers", Sector: "Telehealth", Cap: "small", Start: 11, Drift: 0.0004, Volatility: 0.035},
	{Symbol: "LUNR", Name: "Intuitive Machines", Sector: "Space", Cap: "small", Start: 6.5, Drift: 0.0005, Volatility: 0.048},
	{Symbol: "APLD", Name: "Applied Digital", Sector: "Data Centers", Cap: "small", Start: 7.8, Drift: 0.0005, Volatility: 0.045},
	{Symbol: "RGTI", Name: "Rigetti Computing", Sector: "Quantum", Cap: "small", Start: 1.9, Drift: 0.0003, Volatility: 0.050},
	{Symbol: "LIDR", Name: "AEye Inc", Sector: "LiDAR", Cap: "penny", Start: 1.8, Drift: -0.0001, Volatility: 0.055},
	{Symbol: "MULN", Name: "Mullen Auto", Sector: "EV", Cap: "penny", Start: 0.45, Drift: -0.0003, Volatility: 0.065},
	{Symbol: "GFAI", Name: "Guardforce AI", Sector: "Security AI", Cap: "penny", Start: 1.2, Drift: 0.0001, Volatility: 0.058},
	{Symbol: "CIFR", Name: "Cipher Mining", Sector: "Crypto Mining", Cap: "small", Start: 4.2, Drift: 0.0004, Volatility: 0.055},
	{Symbol: "OPEN", Name: "Opendoor Tech", Sector: "PropTech", Cap: "small", Start: 3.5, Drift: -0.0002, Volatility: 0.040},
}

var indiaInstruments = []model.Instrument{
	{Symbol: "RELIANCE", Name: "Reliance Industries", Sector: "Conglomerate", Cap: "large", Start: 2850, Drift: 0.0004, Volatility: 0.015, Exchange: "NSE"},
	{Symbol: "TCS", Name: "Tata Consultancy", Sector: "IT Services", Cap: "large", Start: 3900, Drift: 0.0003, Volatility: 0.013, Exchange: "NSE"},
	{Symbol: "INFY", Name: "Infosys", Sector: "IT Services", Cap: "large", Start: 1620, Drift: 0.0003, Volatility: 0.014, Exchange: "NSE"},
	{Symbol: "HDFCBANK", Name: "HDFC Bank", Sector: "Banking", Cap: "large", Start: 1680, Drift: 0.0003, Volatility: 0.012, Exchange: "NSE"},
	{Symbol: "ICICIBANK", Name: "ICICI Bank", Sector: "Banking", Cap: "large", Start: 1100, Drift: 0.0004, Volatility: 0.013, Exchange: "NSE"},
	{Symbol: "BAJFINANCE", Name: "Bajaj Finance", Sector: "NBFC", Cap: "large", Start: 7200, Drift: 0.0003, Volatility: 0.018, Exchange: "NSE"},
	{Symbol: "WIPRO", Name: "Wipro Ltd", Sector: "IT Services", Cap: "large", Start: 480, Drift: 0.0002, Volatility: 0.015, Exchange: "NSE"},
	{Symbol: "PERSISTENT", Name: "Persistent Systems", Sector: "IT Services", Cap: "mid", Start: 5400, Drift: 0.0005, Volatility: 0.022, Exchange: "NSE"},
	{Symbol: "COFORGE", Name: "Coforge Ltd", Sector: "IT Services", Cap: "mid", Start: 7200, Drift: 0.0005, Volatility: 0.024, Exchange: "NSE"},
	{Symbol: "MUTHOOTFIN", Name: "Muthoot Finance", Sector: "Gold Finance", Cap: "mid", Start: 1950, Drift: 0.0004, Volatility: 0.020, Exchange: "NSE"},
	{Symbol: "ABCAPITAL", Name: "Aditya Birla Capital", Sector: "NBFC", Cap: "mid", Start: 195, Drift: 0.0003, Volatility: 0.022, Exchange: "NSE"},
	{Symbol: "LTTS", Name: "L&T Technology", Sector: "Engineering", Cap: "mid", Start: 4800, Drift: 0.0004, Volatility: 0.021, Exchange: "NSE"},
	{Symbol: "FINEORG", Name: "Fine Organics", Sector: "Chemicals", Cap: "small", Start: 5200, Drift: 0.0003, Volatility: 0.025, Exchange: "NSE"},
	{Symbol: "DEEPAKNTR", Name: "Deepak Nitrite", Sector: "Chemicals", Cap: "small", Start: 2400, Drift: 0.0002, Volatility: 0.026, Exchange: "NSE"},
	{Symbol: "CLEAN", Name: "Clean Science", Sector: "Specialty Chem", Cap: "small", Start: 1550, Drift: 0.0002, Volatility: 0.027, Exchange: "NSE"},
}
